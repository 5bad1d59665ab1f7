package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const createAttempts = 3

// Service provides business logic for user operations
type Service struct {
	storage  Storage
	ids      IDGenerator
	validate *validator.Validate
}

func NewService(storage Storage, ids IDGenerator) *Service {
	return &Service{
		storage:  storage,
		ids:      ids,
		validate: validator.New(),
	}
}

// GetOrCreate returns the profile for the identity, creating it with a fresh
// referral code and API key on first contact.
func (s *Service) GetOrCreate(ctx context.Context, identity Identity) (*Profile, error) {
	existing, err := s.storage.GetUser(ctx, GetCriteria{TelegramID: &identity.TelegramID})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		profile := Profile{
			TelegramID:   identity.TelegramID,
			Username:     identity.Username,
			FirstName:    identity.FirstName,
			ReferralCode: s.ids.ReferralCode(),
			APIKey:       s.ids.APIKey(),
			Language:     "en",
		}
		if err := s.validate.Struct(profile); err != nil {
			return nil, fmt.Errorf("validate new profile: %w", err)
		}

		created, err := s.storage.CreateUser(ctx, profile)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, ErrDuplicate) {
			return nil, err
		}

		// a concurrent first contact may have won the insert
		existing, getErr := s.storage.GetUser(ctx, GetCriteria{TelegramID: &identity.TelegramID})
		if getErr != nil {
			return nil, getErr
		}
		if existing != nil {
			return existing, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("create user after %d attempts: %w", createAttempts, lastErr)
}

func (s *Service) GetProfile(ctx context.Context, telegramID int64) (*Profile, error) {
	profile, err := s.storage.GetUser(ctx, GetCriteria{TelegramID: &telegramID})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// PhoneTakenByOther reports whether phone is already bound to another user.
func (s *Service) PhoneTakenByOther(ctx context.Context, telegramID int64, phone string) (bool, error) {
	owner, err := s.storage.GetUser(ctx, GetCriteria{PhoneNumber: &phone})
	if err != nil {
		return false, err
	}
	return owner != nil && owner.TelegramID != telegramID, nil
}

// CompleteAccount writes all collected account fields and flips the
// account flag in one update.
func (s *Service) CompleteAccount(ctx context.Context, telegramID int64, details AccountDetails) (*Profile, error) {
	details.FullName = strings.TrimSpace(details.FullName)
	details.PhoneNumber = strings.TrimSpace(details.PhoneNumber)
	details.Email = strings.TrimSpace(details.Email)

	current, err := s.GetProfile(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	candidate := *current
	candidate.FullName = details.FullName
	candidate.PhoneNumber = details.PhoneNumber
	candidate.Email = details.Email
	candidate.AccountCreated = true
	if err := s.validate.Struct(candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileIncomplete, err)
	}

	return s.storage.CompleteAccount(ctx, telegramID, details)
}

// Login matches a phone number against stored accounts.
func (s *Service) Login(ctx context.Context, telegramID int64, phone string) (LoginOutcome, error) {
	owner, err := s.storage.GetUser(ctx, GetCriteria{PhoneNumber: &phone})
	if err != nil {
		return LoginNotFound, err
	}

	switch {
	case owner == nil:
		return LoginNotFound, nil
	case owner.TelegramID != telegramID:
		return LoginMismatch, nil
	}

	if owner.AccountCreated {
		return LoginOK, nil
	}

	candidate := *owner
	candidate.AccountCreated = true
	if err := s.validate.Struct(candidate); err != nil {
		return LoginNotFound, fmt.Errorf("%w: %v", ErrProfileIncomplete, err)
	}

	created := true
	if _, err := s.storage.UpdateUser(ctx, GetCriteria{TelegramID: &telegramID}, UpdateParams{AccountCreated: &created}); err != nil {
		return LoginNotFound, err
	}
	return LoginOK, nil
}

// UpdateField changes one editable attribute of a created account.
func (s *Service) UpdateField(ctx context.Context, telegramID int64, field Field, value string) (*Profile, error) {
	current, err := s.GetProfile(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	candidate := *current
	var params UpdateParams
	switch field {
	case FieldName:
		params.FullName, candidate.FullName = &value, value
	case FieldPhone:
		params.PhoneNumber, candidate.PhoneNumber = &value, value
	case FieldEmail:
		params.Email, candidate.Email = &value, value
	case FieldBio:
		params.Bio = &value
	case FieldLocation:
		params.Location = &value
	case FieldBirthday:
		params.Birthday = &value
	case FieldPhoto:
		params.PhotoFileID = &value
	default:
		return nil, fmt.Errorf("unknown profile field %q", field)
	}

	if err := s.validate.Struct(candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileIncomplete, err)
	}

	return s.storage.UpdateUser(ctx, GetCriteria{TelegramID: &telegramID}, params)
}

func (s *Service) SetLanguage(ctx context.Context, telegramID int64, language string) error {
	_, err := s.storage.UpdateUser(ctx, GetCriteria{TelegramID: &telegramID}, UpdateParams{Language: &language})
	return err
}
