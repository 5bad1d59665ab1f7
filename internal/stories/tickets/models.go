package tickets

import (
	"errors"
	"time"
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusReplied Status = "replied"
	StatusClosed  Status = "closed"
)

var ErrDuplicateTicketID = errors.New("duplicate ticket id")

type Ticket struct {
	ID          int64
	TicketID    string
	UserID      int64
	Subject     string
	Description string
	Status      Status
	CreatedAt   time.Time
	LastReply   *time.Time
}

type ListCriteria struct {
	UserID *int64
	Limit  int
}
