package flows

import (
	"context"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

func (e *Engine) startTicket(ctx context.Context, ev Event, lang string) (Result, error) {
	return e.enter(ctx, ev.UserID, lang, states.Start(states.TicketWaitSubject, nil))
}

// finalizeTicket opens the ticket and tells the admins in the background.
// A failed notice never fails the ticket.
func (e *Engine) finalizeTicket(ctx context.Context, ev Event, profile *users.Profile, conv states.Conversation, lang string) (Result, error) {
	data, err := required(conv, states.KeySubject, states.KeyDescription)
	if err != nil {
		return Result{}, err
	}

	ticket, err := e.tickets.Open(ctx, ev.UserID, data[states.KeySubject], data[states.KeyDescription])
	if err != nil {
		return Result{}, err
	}

	if err := e.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}
	e.metrics.FlowCompleted("ticket")

	e.notifier.NotifyAdmins(ctx, e.text(defaultLanguage, "admin.new_ticket", map[string]interface{}{
		"ticket_id":   ticket.TicketID,
		"user_id":     ev.UserID,
		"name":        profile.DisplayName(),
		"subject":     ticket.Subject,
		"description": ticket.Description,
	}))

	return Say(Reply{
		Text: e.text(lang, "ticket.created", map[string]interface{}{
			"ticket_id": ticket.TicketID,
			"subject":   ticket.Subject,
		}),
		Buttons: [][]Button{
			{{Text: e.text(lang, "buttons.view_tickets", nil), Data: CallbackViewTickets}},
			{e.menuButton(lang)},
		},
	}), nil
}
