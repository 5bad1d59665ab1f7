package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusPartial    Status = "partial"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrPendingOrderNotFound = errors.New("pending order not found")
	// ErrDuplicateOrderID is returned by Repository when the public order id collides.
	ErrDuplicateOrderID = errors.New("duplicate order id")
)

// PendingOrder is the priced order waiting for the user's confirm or cancel.
// There is at most one per user.
type PendingOrder struct {
	UserID    int64
	Platform  string
	Service   string
	Quality   string
	Link      string
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
}

type Order struct {
	ID         int64
	OrderID    string
	UserID     int64
	Platform   string
	Service    string
	Quality    string
	Link       string
	Quantity   int
	Price      decimal.Decimal
	Status     Status
	StartCount int
	Remains    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Confirmation is the outcome of a successful checkout.
type Confirmation struct {
	Order   *Order
	Balance decimal.Decimal
}

type ListCriteria struct {
	UserID *int64
	Limit  int
}

// InsufficientBalanceError carries the amounts shown to the user.
type InsufficientBalanceError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s", e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

func (e *InsufficientBalanceError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}
