package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const confirmAttempts = 3

type Service struct {
	repo   Repository
	ids    IDGenerator
	logger *slog.Logger
}

func NewService(repo Repository, ids IDGenerator, logger *slog.Logger) *Service {
	return &Service{repo: repo, ids: ids, logger: logger.With("component", "orders")}
}

// CreatePending replaces any previous pending order of the user.
func (s *Service) CreatePending(ctx context.Context, order PendingOrder) (*PendingOrder, error) {
	if order.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", order.Quantity)
	}
	if !order.Price.IsPositive() {
		return nil, fmt.Errorf("price must be positive, got %s", order.Price)
	}
	return s.repo.SavePendingOrder(ctx, order)
}

// Cancel reports whether there was a pending order to drop.
func (s *Service) Cancel(ctx context.Context, userID int64) (bool, error) {
	return s.repo.DeletePendingOrder(ctx, userID)
}

// Confirm turns the pending order into a processing order. On
// ErrInsufficientBalance nothing is changed and the pending order stays.
func (s *Service) Confirm(ctx context.Context, userID int64) (*Confirmation, error) {
	var lastErr error
	for i := 0; i < confirmAttempts; i++ {
		orderID := s.ids.OrderID()
		res, err := s.repo.ConfirmPendingOrder(ctx, userID, orderID)
		if err == nil {
			s.logger.Info("Order confirmed",
				"user_id", userID,
				"order_id", res.Order.OrderID,
				"price", res.Order.Price.StringFixed(2))
			return res, nil
		}
		if !errors.Is(err, ErrDuplicateOrderID) {
			return nil, err
		}
		s.logger.Warn("Order id collision, retrying", "order_id", orderID)
		lastErr = err
	}
	return nil, fmt.Errorf("confirm order after %d attempts: %w", confirmAttempts, lastErr)
}

func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*Order, error) {
	return s.repo.ListOrders(ctx, ListCriteria{UserID: &userID, Limit: limit})
}
