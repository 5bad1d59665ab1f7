package users

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate is returned by Storage when a unique column collides.
	ErrDuplicate = errors.New("duplicate user key")
	// ErrProfileIncomplete means the profile would break the account invariant.
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrNotFound          = errors.New("user not found")
)

type (
	Storage interface {
		CreateUser(ctx context.Context, profile Profile) (*Profile, error)
		GetUser(ctx context.Context, criteria GetCriteria) (*Profile, error)
		UpdateUser(ctx context.Context, criteria GetCriteria, params UpdateParams) (*Profile, error)
		CompleteAccount(ctx context.Context, telegramID int64, details AccountDetails) (*Profile, error)
	}

	IDGenerator interface {
		ReferralCode() string
		APIKey() string
	}
)
