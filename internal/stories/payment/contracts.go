package payment

import (
	"context"

	yoopayment "github.com/rvinnie/yookassa-sdk-go/yookassa/payment"
	"github.com/shopspring/decimal"
)

type (
	// Storage provides database operations for payments
	Storage interface {
		CreatePayment(ctx context.Context, payment Payment) (*Payment, error)
		GetPayment(ctx context.Context, criteria GetCriteria) (*Payment, error)
		UpdatePayment(ctx context.Context, criteria GetCriteria, params UpdateParams) (*Payment, error)
		ListPayments(ctx context.Context, criteria ListCriteria) ([]*Payment, error)
		// CreditPayment adds the amount of an approved, uncredited payment to
		// the owner's balance. It reports false when the payment was already credited.
		CreditPayment(ctx context.Context, paymentID int64) (bool, decimal.Decimal, error)
	}

	// YooKassaClient provides YooKassa API operations
	YooKassaClient interface {
		CreatePayment(ctx context.Context, amount decimal.Decimal, description string, metadata map[string]string) (*yoopayment.Payment, error)
		GetPaymentStatus(ctx context.Context, paymentID string) (*yoopayment.Payment, error)
	}
)
