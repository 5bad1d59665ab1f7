package cmds

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"smmpanel-bot/internal/stories/tickets"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/flows"
)

func (s *Screens) Tickets(ctx context.Context, lang string, profile *users.Profile) (flows.Reply, error) {
	list, err := s.tickets.List(ctx, profile.TelegramID, listLimit)
	if err != nil {
		return flows.Reply{}, fmt.Errorf("list tickets: %w", err)
	}

	buttons := [][]flows.Button{
		{s.button(lang, "buttons.create_ticket", flows.CallbackCreateTicket)},
		s.menuRow(lang),
	}

	if len(list) == 0 {
		return flows.Reply{Text: s.l10n.Get(lang, "tickets.list_empty", nil), Buttons: buttons}, nil
	}

	open := lo.CountBy(list, func(t *tickets.Ticket) bool { return t.Status == tickets.StatusOpen })
	lines := lo.Map(list, func(t *tickets.Ticket, _ int) string {
		return s.l10n.Get(lang, "tickets.list_line", map[string]interface{}{
			"ticket_id": t.TicketID,
			"subject":   t.Subject,
			"status":    string(t.Status),
			"date":      t.CreatedAt.Format("02.01.2006"),
		})
	})

	text := s.l10n.Get(lang, "tickets.list_title", map[string]interface{}{"count": len(list), "open": open}) +
		"\n\n" + strings.Join(lines, "\n\n")

	return flows.Reply{Text: text, Buttons: buttons}, nil
}
