package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	yoopayment "github.com/rvinnie/yookassa-sdk-go/yookassa/payment"
	"github.com/shopspring/decimal"
)

// unfinished payments older than this are no longer polled
const pollWindow = 24 * time.Hour

// Service provides business logic for wallet top-ups
type Service struct {
	storage        Storage
	yookassaClient YooKassaClient
	logger         *slog.Logger
	validate       *validator.Validate
	mockPayment    bool
	now            func() time.Time
}

func NewService(storage Storage, yookassaClient YooKassaClient, mockPayment bool, logger *slog.Logger) *Service {
	return &Service{
		storage:        storage,
		yookassaClient: yookassaClient,
		logger:         logger.With("component", "payment"),
		validate:       validator.New(),
		mockPayment:    mockPayment,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// CreateTopUp registers a payment with the provider and returns it with the pay link.
// In mock mode the payment is approved and credited right away.
func (s *Service) CreateTopUp(ctx context.Context, req TopUpRequest) (*Payment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid top-up request: %w", err)
	}

	amount := decimal.NewFromInt(req.Rupees)
	s.logger.Info("Creating top-up", "user_id", req.UserID, "amount", amount.StringFixed(2), "mock_mode", s.mockPayment)

	if s.mockPayment {
		return s.createMockPayment(ctx, req.UserID, amount)
	}

	created, err := s.storage.CreatePayment(ctx, Payment{
		UserID: req.UserID,
		Amount: amount,
		Status: StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment in storage: %w", err)
	}

	metadata := map[string]string{
		"internal_payment_id": strconv.FormatInt(created.ID, 10),
	}
	description := fmt.Sprintf("Wallet top-up #%d", created.ID)

	yooPayment, err := s.yookassaClient.CreatePayment(ctx, amount, description, metadata)
	if err != nil {
		s.logger.Error("Failed to create payment in YooKassa", "error", err, "payment_id", created.ID)
		return nil, fmt.Errorf("create payment in YooKassa: %w", err)
	}

	params := UpdateParams{YooKassaID: &yooPayment.ID}
	if url := extractPaymentURL(yooPayment); url != "" {
		params.PaymentURL = &url
	} else {
		s.logger.Warn("No payment URL in YooKassa response", "payment_id", created.ID)
	}

	return s.storage.UpdatePayment(ctx, GetCriteria{ID: &created.ID}, params)
}

func (s *Service) createMockPayment(ctx context.Context, userID int64, amount decimal.Decimal) (*Payment, error) {
	now := s.now()
	created, err := s.storage.CreatePayment(ctx, Payment{
		UserID:      userID,
		Amount:      amount,
		Status:      StatusApproved,
		ProcessedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("create mock payment in storage: %w", err)
	}

	if _, _, err := s.storage.CreditPayment(ctx, created.ID); err != nil {
		return nil, fmt.Errorf("credit mock payment: %w", err)
	}

	return s.storage.GetPayment(ctx, GetCriteria{ID: &created.ID})
}

// CheckTopUp refreshes the provider status and credits the wallet once the
// payment is approved. Repeated calls never credit twice.
func (s *Service) CheckTopUp(ctx context.Context, paymentID int64) (*CheckResult, error) {
	criteria := GetCriteria{ID: &paymentID}
	p, err := s.storage.GetPayment(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	if p.Status == StatusPending && !s.mockPayment {
		p, err = s.refreshStatus(ctx, p)
		if err != nil {
			return nil, err
		}
	}

	if p.Status != StatusApproved || p.Credited {
		return &CheckResult{Payment: p}, nil
	}

	credited, balance, err := s.storage.CreditPayment(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("credit payment: %w", err)
	}
	if credited {
		s.logger.Info("Top-up credited", "payment_id", p.ID, "user_id", p.UserID, "amount", p.Amount.StringFixed(2))
	}

	p, err = s.storage.GetPayment(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &CheckResult{Payment: p, JustCredited: credited, Balance: balance}, nil
}

func (s *Service) refreshStatus(ctx context.Context, p *Payment) (*Payment, error) {
	if p.YooKassaID == nil {
		return nil, fmt.Errorf("payment %d has no YooKassa id", p.ID)
	}

	yooPayment, err := s.yookassaClient.GetPaymentStatus(ctx, *p.YooKassaID)
	if err != nil {
		return nil, fmt.Errorf("get payment status from YooKassa: %w", err)
	}

	newStatus := mapYooKassaStatusToInternal(yooPayment.Status)
	if newStatus == p.Status {
		return p, nil
	}

	params := UpdateParams{Status: &newStatus}
	if newStatus == StatusApproved {
		now := s.now()
		params.ProcessedAt = &now
	}

	s.logger.Info("Payment status changed", "payment_id", p.ID, "old_status", p.Status, "new_status", newStatus)
	return s.storage.UpdatePayment(ctx, GetCriteria{ID: &p.ID}, params)
}

// ListOpen returns recent payments that may still need crediting.
func (s *Service) ListOpen(ctx context.Context) ([]*Payment, error) {
	after := s.now().Add(-pollWindow)
	notCredited := false

	pending := StatusPending
	pendingList, err := s.storage.ListPayments(ctx, ListCriteria{Status: &pending, CreatedAfter: &after})
	if err != nil {
		return nil, err
	}

	approved := StatusApproved
	approvedList, err := s.storage.ListPayments(ctx, ListCriteria{Status: &approved, Credited: &notCredited})
	if err != nil {
		return nil, err
	}

	return append(pendingList, approvedList...), nil
}

func (s *Service) IsMockPayment() bool {
	return s.mockPayment
}

func extractPaymentURL(p *yoopayment.Payment) string {
	if p.Confirmation == nil {
		return ""
	}

	if redirect, ok := p.Confirmation.(*yoopayment.Redirect); ok {
		return redirect.ConfirmationURL
	}

	// the SDK sometimes decodes confirmation into a plain map
	if confMap, ok := p.Confirmation.(map[string]interface{}); ok {
		if url, exists := confMap["confirmation_url"].(string); exists {
			return url
		}
	}

	return ""
}

func mapYooKassaStatusToInternal(status yoopayment.Status) Status {
	switch status {
	case yoopayment.Succeeded:
		return StatusApproved
	case yoopayment.Canceled:
		return StatusCancelled
	default:
		return StatusPending
	}
}
