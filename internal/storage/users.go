package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smmpanel-bot/internal/stories/users"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const usersTable = "users"

var userRowFields = fields(userRow{})

type userRow struct {
	ID             int64           `db:"id"`
	TelegramID     int64           `db:"telegram_id"`
	Username       string          `db:"username"`
	FirstName      string          `db:"first_name"`
	FullName       string          `db:"full_name"`
	PhoneNumber    string          `db:"phone_number"`
	Email          string          `db:"email"`
	Balance        decimal.Decimal `db:"balance"`
	TotalSpent     decimal.Decimal `db:"total_spent"`
	OrdersCount    int             `db:"orders_count"`
	AccountCreated bool            `db:"account_created"`
	ReferralCode   string          `db:"referral_code"`
	APIKey         string          `db:"api_key"`
	Language       string          `db:"language"`
	Bio            string          `db:"bio"`
	Location       string          `db:"location"`
	Birthday       string          `db:"birthday"`
	PhotoFileID    string          `db:"photo_file_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (u userRow) ToModel() *users.Profile {
	return &users.Profile{
		ID:             u.ID,
		TelegramID:     u.TelegramID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		FullName:       u.FullName,
		PhoneNumber:    u.PhoneNumber,
		Email:          u.Email,
		Balance:        u.Balance,
		TotalSpent:     u.TotalSpent,
		OrdersCount:    u.OrdersCount,
		AccountCreated: u.AccountCreated,
		ReferralCode:   u.ReferralCode,
		APIKey:         u.APIKey,
		Language:       u.Language,
		Bio:            u.Bio,
		Location:       u.Location,
		Birthday:       u.Birthday,
		PhotoFileID:    u.PhotoFileID,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (s *storageImpl) CreateUser(ctx context.Context, profile users.Profile) (*users.Profile, error) {
	now := s.now()
	params := map[string]interface{}{
		"telegram_id":   profile.TelegramID,
		"username":      profile.Username,
		"first_name":    profile.FirstName,
		"balance":       profile.Balance.String(),
		"total_spent":   profile.TotalSpent.String(),
		"referral_code": profile.ReferralCode,
		"api_key":       profile.APIKey,
		"language":      profile.Language,
		"created_at":    now,
		"updated_at":    now,
	}

	q, args, err := s.stmpBuilder().
		Insert(usersTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", users.ErrDuplicate, err)
		}
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetUser(ctx, users.GetCriteria{TelegramID: &profile.TelegramID})
}

func (s *storageImpl) GetUser(ctx context.Context, criteria users.GetCriteria) (*users.Profile, error) {
	query := s.stmpBuilder().
		Select(userRowFields).
		From(usersTable).
		Limit(1)

	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.TelegramID != nil {
		query = query.Where(sq.Eq{"telegram_id": *criteria.TelegramID})
	}
	if criteria.PhoneNumber != nil {
		query = query.Where(sq.Eq{"phone_number": *criteria.PhoneNumber})
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var u userRow
	if err := s.db.GetContext(ctx, &u, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return u.ToModel(), nil
}

func (s *storageImpl) UpdateUser(ctx context.Context, criteria users.GetCriteria, params users.UpdateParams) (*users.Profile, error) {
	query := s.stmpBuilder().
		Update(usersTable).
		Set("updated_at", s.now())

	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.TelegramID != nil {
		query = query.Where(sq.Eq{"telegram_id": *criteria.TelegramID})
	}

	set := map[string]*string{
		"username":      params.Username,
		"first_name":    params.FirstName,
		"full_name":     params.FullName,
		"phone_number":  params.PhoneNumber,
		"email":         params.Email,
		"language":      params.Language,
		"bio":           params.Bio,
		"location":      params.Location,
		"birthday":      params.Birthday,
		"photo_file_id": params.PhotoFileID,
	}
	for col, val := range set {
		if val != nil {
			query = query.Set(col, *val)
		}
	}
	if params.AccountCreated != nil {
		query = query.Set("account_created", *params.AccountCreated)
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetUser(ctx, criteria)
}

// CompleteAccount writes the collected fields and the account flag in a
// single statement, so readers never see a half-created account.
func (s *storageImpl) CompleteAccount(ctx context.Context, telegramID int64, details users.AccountDetails) (*users.Profile, error) {
	q, args, err := s.stmpBuilder().
		Update(usersTable).
		Set("full_name", details.FullName).
		Set("phone_number", details.PhoneNumber).
		Set("email", details.Email).
		Set("account_created", true).
		Set("updated_at", s.now()).
		Where(sq.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, users.ErrNotFound
	}

	return s.GetUser(ctx, users.GetCriteria{TelegramID: &telegramID})
}
