package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const createAttempts = 3

type Service struct {
	storage Storage
	ids     IDGenerator
}

func NewService(storage Storage, ids IDGenerator) *Service {
	return &Service{storage: storage, ids: ids}
}

// Open files a new ticket in the open status.
func (s *Service) Open(ctx context.Context, userID int64, subject, description string) (*Ticket, error) {
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	if subject == "" || description == "" {
		return nil, fmt.Errorf("ticket subject and description are required")
	}

	var lastErr error
	for i := 0; i < createAttempts; i++ {
		ticket, err := s.storage.CreateTicket(ctx, Ticket{
			TicketID:    s.ids.TicketID(),
			UserID:      userID,
			Subject:     subject,
			Description: description,
			Status:      StatusOpen,
		})
		if err == nil {
			return ticket, nil
		}
		if !errors.Is(err, ErrDuplicateTicketID) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("create ticket after %d attempts: %w", createAttempts, lastErr)
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]*Ticket, error) {
	return s.storage.ListTickets(ctx, ListCriteria{UserID: &userID, Limit: limit})
}
