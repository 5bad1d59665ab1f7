package tickets

import "context"

type (
	Storage interface {
		CreateTicket(ctx context.Context, ticket Ticket) (*Ticket, error)
		ListTickets(ctx context.Context, criteria ListCriteria) ([]*Ticket, error)
	}

	IDGenerator interface {
		TicketID() string
	}
)
