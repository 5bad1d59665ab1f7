package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var ErrPaymentNotFound = errors.New("payment not found")

// Payment is a wallet top-up. Credited flips once, together with the balance.
type Payment struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Status      Status
	YooKassaID  *string
	PaymentURL  *string
	Credited    bool
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TopUpRequest struct {
	UserID int64 `validate:"required,gt=0"`
	Rupees int64 `validate:"required,gt=0"`
}

// CheckResult tells the caller whether this check moved money.
type CheckResult struct {
	Payment      *Payment
	JustCredited bool
	Balance      decimal.Decimal
}

type GetCriteria struct {
	ID         *int64
	YooKassaID *string
}

type ListCriteria struct {
	UserID       *int64
	Status       *Status
	Credited     *bool
	CreatedAfter *time.Time
	Limit        int
}

type UpdateParams struct {
	Status      *Status
	YooKassaID  *string
	PaymentURL  *string
	ProcessedAt *time.Time
}
