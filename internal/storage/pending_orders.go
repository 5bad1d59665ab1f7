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

const pendingOrdersTable = "pending_orders"

var pendingOrderRowFields = fields(pendingOrderRow{})

type pendingOrderRow struct {
	UserID    int64           `db:"user_id"`
	Platform  string          `db:"platform"`
	Service   string          `db:"service"`
	Quality   string          `db:"quality"`
	Link      string          `db:"link"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	CreatedAt time.Time       `db:"created_at"`
}

func (r pendingOrderRow) ToModel() *orders.PendingOrder {
	return &orders.PendingOrder{
		UserID:    r.UserID,
		Platform:  r.Platform,
		Service:   r.Service,
		Quality:   r.Quality,
		Link:      r.Link,
		Quantity:  r.Quantity,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
	}
}

// SavePendingOrder upserts: a user holds at most one order awaiting confirmation.
func (s *storageImpl) SavePendingOrder(ctx context.Context, order orders.PendingOrder) (*orders.PendingOrder, error) {
	q, args, err := s.stmpBuilder().
		Insert(pendingOrdersTable).
		Columns("user_id", "platform", "service", "quality", "link", "quantity", "price", "created_at").
		Values(order.UserID, order.Platform, order.Service, order.Quality, order.Link, order.Quantity, order.Price.String(), s.now()).
		Suffix("ON CONFLICT(user_id) DO UPDATE SET " +
			"platform = excluded.platform, service = excluded.service, quality = excluded.quality, " +
			"link = excluded.link, quantity = excluded.quantity, price = excluded.price, created_at = excluded.created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetPendingOrder(ctx, order.UserID)
}

func (s *storageImpl) GetPendingOrder(ctx context.Context, userID int64) (*orders.PendingOrder, error) {
	q, args, err := s.stmpBuilder().
		Select(pendingOrderRowFields).
		From(pendingOrdersTable).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var r pendingOrderRow
	if err := s.db.GetContext(ctx, &r, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return r.ToModel(), nil
}

func (s *storageImpl) DeletePendingOrder(ctx context.Context, userID int64) (bool, error) {
	q, args, err := s.stmpBuilder().
		Delete(pendingOrdersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected: %w", err)
	}
	return n > 0, nil
}
