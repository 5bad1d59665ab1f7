package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smmpanel-bot/internal/stories/tickets"

	sq "github.com/Masterminds/squirrel"
)

const ticketsTable = "tickets"

var ticketRowFields = fields(ticketRow{})

type ticketRow struct {
	ID          int64      `db:"id"`
	TicketID    string     `db:"ticket_id"`
	UserID      int64      `db:"user_id"`
	Subject     string     `db:"subject"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	LastReply   *time.Time `db:"last_reply"`
}

func (r ticketRow) ToModel() *tickets.Ticket {
	return &tickets.Ticket{
		ID:          r.ID,
		TicketID:    r.TicketID,
		UserID:      r.UserID,
		Subject:     r.Subject,
		Description: r.Description,
		Status:      tickets.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		LastReply:   r.LastReply,
	}
}

func (s *storageImpl) CreateTicket(ctx context.Context, ticket tickets.Ticket) (*tickets.Ticket, error) {
	now := s.now()
	q, args, err := s.stmpBuilder().
		Insert(ticketsTable).
		SetMap(map[string]interface{}{
			"ticket_id":   ticket.TicketID,
			"user_id":     ticket.UserID,
			"subject":     ticket.Subject,
			"description": ticket.Description,
			"status":      string(ticket.Status),
			"created_at":  now,
			"last_reply":  now,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", tickets.ErrDuplicateTicketID, err)
		}
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId: %w", err)
	}

	return s.getTicket(ctx, id)
}

func (s *storageImpl) getTicket(ctx context.Context, id int64) (*tickets.Ticket, error) {
	q, args, err := s.stmpBuilder().
		Select(ticketRowFields).
		From(ticketsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var r ticketRow
	if err := s.db.GetContext(ctx, &r, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}
	return r.ToModel(), nil
}

func (s *storageImpl) ListTickets(ctx context.Context, criteria tickets.ListCriteria) ([]*tickets.Ticket, error) {
	query := s.stmpBuilder().
		Select(ticketRowFields).
		From(ticketsTable).
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

	var rows []ticketRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]*tickets.Ticket, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.ToModel())
	}
	return result, nil
}
