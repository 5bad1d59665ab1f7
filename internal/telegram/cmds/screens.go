package cmds

import (
	"context"

	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/tickets"
	"smmpanel-bot/internal/telegram/flows"
)

const listLimit = 10

type (
	OrderHistory interface {
		History(ctx context.Context, userID int64, limit int) ([]*orders.Order, error)
	}

	TicketLister interface {
		List(ctx context.Context, userID int64, limit int) ([]*tickets.Ticket, error)
	}

	localizer interface {
		Get(lang, key string, params map[string]interface{}) string
	}
)

// Screens renders the read-only views of the bot: menu, account, balance,
// order history and tickets.
type Screens struct {
	orders  OrderHistory
	tickets TicketLister
	l10n    localizer
}

func NewScreens(orders OrderHistory, tickets TicketLister, l10n localizer) *Screens {
	return &Screens{
		orders:  orders,
		tickets: tickets,
		l10n:    l10n,
	}
}

func (s *Screens) button(lang, key, data string) flows.Button {
	return flows.Button{Text: s.l10n.Get(lang, key, nil), Data: data}
}

func (s *Screens) menuRow(lang string) []flows.Button {
	return []flows.Button{s.button(lang, "buttons.main_menu", flows.CallbackMainMenu)}
}
