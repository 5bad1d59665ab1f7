package cmds

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/flows"
)

func (s *Screens) OrderHistory(ctx context.Context, lang string, profile *users.Profile) (flows.Reply, error) {
	list, err := s.orders.History(ctx, profile.TelegramID, listLimit)
	if err != nil {
		return flows.Reply{}, fmt.Errorf("get order history: %w", err)
	}

	buttons := [][]flows.Button{
		{s.button(lang, "buttons.new_order", flows.CallbackNewOrder)},
		s.menuRow(lang),
	}

	if len(list) == 0 {
		return flows.Reply{Text: s.l10n.Get(lang, "orders.history_empty", nil), Buttons: buttons}, nil
	}

	lines := lo.Map(list, func(o *orders.Order, _ int) string {
		return s.l10n.Get(lang, "orders.history_line", map[string]interface{}{
			"order_id": o.OrderID,
			"service":  o.Platform + " " + o.Service,
			"quantity": o.Quantity,
			"price":    o.Price.StringFixed(2),
			"status":   string(o.Status),
			"date":     o.CreatedAt.Format("02.01.2006"),
		})
	})

	text := s.l10n.Get(lang, "orders.history_title", map[string]interface{}{"count": len(list)}) +
		"\n\n" + strings.Join(lines, "\n\n")

	return flows.Reply{Text: text, Buttons: buttons}, nil
}
