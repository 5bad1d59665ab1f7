package users

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the account and wallet record of one Telegram user.
// An account marked as created always carries a name, a phone and an email.
type Profile struct {
	ID             int64
	TelegramID     int64 `validate:"required"`
	Username       string
	FirstName      string
	FullName       string `validate:"required_if=AccountCreated true"`
	PhoneNumber    string `validate:"required_if=AccountCreated true"`
	Email          string `validate:"required_if=AccountCreated true"`
	Balance        decimal.Decimal
	TotalSpent     decimal.Decimal
	OrdersCount    int
	AccountCreated bool
	ReferralCode   string `validate:"required"`
	APIKey         string `validate:"required"`
	Language       string
	Bio            string
	Location       string
	Birthday       string
	PhotoFileID    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName prefers the registered full name over the Telegram one.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.FirstName != "" {
		return p.FirstName
	}
	return p.Username
}

// Identity is what the transport knows about a user on first contact.
type Identity struct {
	TelegramID int64
	Username   string
	FirstName  string
}

// AccountDetails are the fields collected by the account creation flow.
type AccountDetails struct {
	FullName    string
	PhoneNumber string
	Email       string
}

type GetCriteria struct {
	ID          *int64
	TelegramID  *int64
	PhoneNumber *string
}

type UpdateParams struct {
	Username       *string
	FirstName      *string
	FullName       *string
	PhoneNumber    *string
	Email          *string
	Language       *string
	Bio            *string
	Location       *string
	Birthday       *string
	PhotoFileID    *string
	AccountCreated *bool
}

// Field names an editable profile attribute.
type Field string

const (
	FieldName     Field = "name"
	FieldPhone    Field = "phone"
	FieldEmail    Field = "email"
	FieldBio      Field = "bio"
	FieldLocation Field = "location"
	FieldBirthday Field = "birthday"
	FieldPhoto    Field = "photo"
)

// LoginOutcome is the result of matching a phone number to an account.
type LoginOutcome int

const (
	LoginNotFound LoginOutcome = iota
	LoginOK
	LoginMismatch
)
