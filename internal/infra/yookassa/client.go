package yookassa

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rvinnie/yookassa-sdk-go/yookassa"
	yoocommon "github.com/rvinnie/yookassa-sdk-go/yookassa/common"
	yoopayment "github.com/rvinnie/yookassa-sdk-go/yookassa/payment"
	"github.com/shopspring/decimal"
)

// Client wraps the YooKassa SDK client
type Client struct {
	client    *yookassa.Client
	logger    *slog.Logger
	returnURL string
	currency  string
}

func NewClient(shopID, secretKey, returnURL, currency string, logger *slog.Logger) (*Client, error) {
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	return &Client{
		client:    yookassa.NewClient(shopID, secretKey),
		logger:    logger.With("component", "yookassa"),
		returnURL: returnURL,
		currency:  currency,
	}, nil
}

// CreatePayment registers a redirect payment with auto-capture.
func (c *Client) CreatePayment(_ context.Context, amount decimal.Decimal, description string, metadata map[string]string) (*yoopayment.Payment, error) {
	c.logger.Info("Creating payment", "amount", amount.StringFixed(2), "currency", c.currency)

	idempotenceKey := fmt.Sprintf("%s_%d", uuid.New().String(), time.Now().Unix())

	payment := &yoopayment.Payment{
		Amount: &yoocommon.Amount{
			Value:    amount.StringFixed(2),
			Currency: c.currency,
		},
		Confirmation: &yoopayment.Redirect{
			Type:      yoopayment.TypeRedirect,
			ReturnURL: c.returnURL,
		},
		Description: description,
		Metadata:    metadata,
		Capture:     true,
	}

	handler := yookassa.NewPaymentHandler(c.client).WithIdempotencyKey(idempotenceKey)
	result, err := handler.CreatePayment(payment)
	if err != nil {
		c.logger.Error("Failed to create payment", "error", err)
		return nil, fmt.Errorf("create payment: %w", err)
	}

	c.logger.Info("Payment created", "yookassa_id", result.ID, "status", result.Status)
	return result, nil
}

func (c *Client) GetPaymentStatus(_ context.Context, paymentID string) (*yoopayment.Payment, error) {
	handler := yookassa.NewPaymentHandler(c.client)
	result, err := handler.FindPayment(paymentID)
	if err != nil {
		c.logger.Error("Failed to get payment status", "error", err, "yookassa_id", paymentID)
		return nil, fmt.Errorf("get payment status: %w", err)
	}

	c.logger.Debug("Payment status retrieved", "yookassa_id", paymentID, "status", result.Status)
	return result, nil
}
