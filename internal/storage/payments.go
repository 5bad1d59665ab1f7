package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smmpanel-bot/internal/stories/payment"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const paymentsTable = "payments"

var paymentRowFields = fields(paymentRow{})

type paymentRow struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Amount      decimal.Decimal `db:"amount"`
	Status      string          `db:"status"`
	YooKassaID  *string         `db:"yookassa_id"`
	PaymentURL  *string         `db:"payment_url"`
	Credited    bool            `db:"credited"`
	ProcessedAt *time.Time      `db:"processed_at"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (p paymentRow) ToModel() *payment.Payment {
	return &payment.Payment{
		ID:          p.ID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Status:      payment.Status(p.Status),
		YooKassaID:  p.YooKassaID,
		PaymentURL:  p.PaymentURL,
		Credited:    p.Credited,
		ProcessedAt: p.ProcessedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (s *storageImpl) CreatePayment(ctx context.Context, p payment.Payment) (*payment.Payment, error) {
	now := s.now()
	params := map[string]interface{}{
		"user_id":      p.UserID,
		"amount":       p.Amount.String(),
		"status":       string(p.Status),
		"yookassa_id":  p.YooKassaID,
		"payment_url":  p.PaymentURL,
		"processed_at": p.ProcessedAt,
		"created_at":   now,
		"updated_at":   now,
	}

	q, args, err := s.stmpBuilder().
		Insert(paymentsTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId: %w", err)
	}

	return s.GetPayment(ctx, payment.GetCriteria{ID: &id})
}

func (s *storageImpl) GetPayment(ctx context.Context, criteria payment.GetCriteria) (*payment.Payment, error) {
	query := s.stmpBuilder().
		Select(paymentRowFields).
		From(paymentsTable).
		Limit(1)

	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.YooKassaID != nil {
		query = query.Where(sq.Eq{"yookassa_id": *criteria.YooKassaID})
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var p paymentRow
	if err := s.db.GetContext(ctx, &p, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return p.ToModel(), nil
}

func (s *storageImpl) UpdatePayment(ctx context.Context, criteria payment.GetCriteria, params payment.UpdateParams) (*payment.Payment, error) {
	query := s.stmpBuilder().
		Update(paymentsTable).
		Set("updated_at", s.now())

	if criteria.ID != nil {
		query = query.Where(sq.Eq{"id": *criteria.ID})
	}
	if criteria.YooKassaID != nil {
		query = query.Where(sq.Eq{"yookassa_id": *criteria.YooKassaID})
	}

	if params.Status != nil {
		query = query.Set("status", string(*params.Status))
	}
	if params.YooKassaID != nil {
		query = query.Set("yookassa_id", *params.YooKassaID)
	}
	if params.PaymentURL != nil {
		query = query.Set("payment_url", *params.PaymentURL)
	}
	if params.ProcessedAt != nil {
		query = query.Set("processed_at", *params.ProcessedAt)
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetPayment(ctx, criteria)
}

func (s *storageImpl) ListPayments(ctx context.Context, criteria payment.ListCriteria) ([]*payment.Payment, error) {
	query := s.stmpBuilder().
		Select(paymentRowFields).
		From(paymentsTable).
		OrderBy("created_at DESC")

	if criteria.UserID != nil {
		query = query.Where(sq.Eq{"user_id": *criteria.UserID})
	}
	if criteria.Status != nil {
		query = query.Where(sq.Eq{"status": string(*criteria.Status)})
	}
	if criteria.Credited != nil {
		query = query.Where(sq.Eq{"credited": *criteria.Credited})
	}
	if criteria.CreatedAfter != nil {
		query = query.Where(sq.Gt{"created_at": *criteria.CreatedAfter})
	}
	if criteria.Limit > 0 {
		query = query.Limit(uint64(criteria.Limit))
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []paymentRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*payment.Payment, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}

// CreditPayment marks an approved payment as credited and adds its amount to
// the owner's balance in the same transaction.
func (s *storageImpl) CreditPayment(ctx context.Context, paymentID int64) (bool, decimal.Decimal, error) {
	var (
		credited bool
		balance  decimal.Decimal
	)

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		q, args, err := s.stmpBuilder().
			Update(paymentsTable).
			Set("credited", true).
			Set("updated_at", s.now()).
			Where(sq.Eq{"id": paymentID, "credited": false, "status": string(payment.StatusApproved)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}

		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected: %w", err)
		}

		var (
			userID int64
			amount decimal.Decimal
		)
		q, args, err = s.stmpBuilder().
			Select("user_id", "amount").
			From(paymentsTable).
			Where(sq.Eq{"id": paymentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}
		if err := tx.QueryRowContext(ctx, q, args...).Scan(&userID, &amount); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return payment.ErrPaymentNotFound
			}
			return fmt.Errorf("row.Scan: %w", err)
		}

		current, _, err := s.walletTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		if n == 0 {
			balance = current
			return nil
		}

		balance = current.Add(amount)
		q, args, err = s.stmpBuilder().
			Update(usersTable).
			Set("balance", balance.String()).
			Set("updated_at", s.now()).
			Where(sq.Eq{"telegram_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sql query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("tx.ExecContext: %w", err)
		}

		credited = true
		return nil
	})
	if err != nil {
		return false, decimal.Zero, err
	}

	return credited, balance, nil
}
