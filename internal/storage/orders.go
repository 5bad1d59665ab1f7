package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smmpanel-bot/internal/stories/orders"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const ordersTable = "orders"

var orderRowFields = fields(orderRow{})

type orderRow struct {
	ID         int64           `db:"id"`
	OrderID    string          `db:"order_id"`
	UserID     int64           `db:"user_id"`
	Platform   string          `db:"platform"`
	Service    string          `db:"service"`
	Quality    string          `db:"quality"`
	Link       string          `db:"link"`
	Quantity   int             `db:"quantity"`
	Price      decimal.Decimal `db:"price"`
	Status     string          `db:"status"`
	StartCount int             `db:"start_count"`
	Remains    int             `db:"remains"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (r orderRow) ToModel() *orders.Order {
	return &orders.Order{
		ID:         r.ID,
		OrderID:    r.OrderID,
		UserID:     r.UserID,
		Platform:   r.Platform,
		Service:    r.Service,
		Quality:    r.Quality,
		Link:       r.Link,
		Quantity:   r.Quantity,
		Price:      r.Price,
		Status:     orders.Status(r.Status),
		StartCount: r.StartCount,
		Remains:    r.Remains,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ConfirmPendingOrder checks the balance and, when it covers the price,
// records the order, debits the wallet, bumps the counters and drops the
// pending order. Either all of it happens or none of it.
func (s *storageImpl) ConfirmPendingOrder(ctx context.Context, userID int64, orderID string) (*orders.Confirmation, error) {
	var out orders.Confirmation

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		pending, err := s.pendingOrderTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		balance, totalSpent, err := s.walletTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		if balance.LessThan(pending.Price) {
			return &orders.InsufficientBalanceError{Required: pending.Price, Available: balance}
		}

		now := s.now()
		order := orders.Order{
			OrderID:   orderID,
			UserID:    userID,
			Platform:  pending.Platform,
			Service:   pending.Service,
			Quality:   pending.Quality,
			Link:      pending.Link,
			Quantity:  pending.Quantity,
			Price:     pending.Price,
			Status:    orders.StatusProcessing,
			Remains:   pending.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}

		q, args, err := s.stmpBuilder().
			Insert(ordersTable).
			SetMap(map[string]interface{}{
				"order_id":    order.OrderID,
				"user_id":     order.UserID,
				"platform":    order.Platform,
				"service":     order.Service,
				"quality":     order.Quality,
				"link":        order.Link,
				"quantity":    order.Quantity,
				"price":       order.Price.String(),
				"status":      string(order.Status),
				"start_count": 0,
				"remains":     order.Remains,
				"created_at":  now,
				"updated_at":  now,
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %v", orders.ErrDuplicateOrderID, err)
			}
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		if order.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("result.LastInsertId: %w", err)
		}

		newBalance := balance.Sub(pending.Price)
		q, args, err = s.stmpBuilder().
			Update(usersTable).
			Set("balance", newBalance.String()).
			Set("total_spent", totalSpent.Add(pending.Price).String()).
			Set("orders_count", sq.Expr("orders_count + 1")).
			Set("updated_at", now).
			Where(sq.Eq{"telegram_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}

		q, args, err = s.stmpBuilder().
			Delete(pendingOrdersTable).
			Where(sq.Eq{"user_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}

		out = orders.Confirmation{Order: &order, Balance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (s *storageImpl) pendingOrderTx(ctx context.Context, tx *sql.Tx, userID int64) (*orders.PendingOrder, error) {
	q, args, err := s.stmpBuilder().
		Select(pendingOrderRowFields).
		From(pendingOrdersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var r pendingOrderRow
	err = tx.QueryRowContext(ctx, q, args...).
		Scan(&r.UserID, &r.Platform, &r.Service, &r.Quality, &r.Link, &r.Quantity, &r.Price, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orders.ErrPendingOrderNotFound
		}
		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return r.ToModel(), nil
}

func (s *storageImpl) walletTx(ctx context.Context, tx *sql.Tx, userID int64) (decimal.Decimal, decimal.Decimal, error) {
	q, args, err := s.stmpBuilder().
		Select("balance", "total_spent").
		From(usersTable).
		Where(sq.Eq{"telegram_id": userID}).
		ToSql()
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("build sql query: %w", err)
	}

	var balance, totalSpent decimal.Decimal
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&balance, &totalSpent); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("row.Scan: %w", err)
	}

	return balance, totalSpent, nil
}

func (s *storageImpl) ListOrders(ctx context.Context, criteria orders.ListCriteria) ([]*orders.Order, error) {
	query := s.stmpBuilder().
		Select(orderRowFields).
		From(ordersTable).
		OrderBy("created_at DESC", "id DESC")

	if criteria.UserID != nil {
		query = query.Where(sq.Eq{"user_id": *criteria.UserID})
	}
	if criteria.Limit > 0 {
		query = query.Limit(uint64(criteria.Limit))
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*orders.Order, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}
