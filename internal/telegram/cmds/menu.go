package cmds

import (
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/flows"
)

func (s *Screens) MainMenu(lang string, profile *users.Profile) flows.Reply {
	return flows.Reply{
		Text: s.l10n.Get(lang, "menu.main", map[string]interface{}{
			"name":    profile.DisplayName(),
			"balance": profile.Balance.StringFixed(2),
		}),
		Buttons: [][]flows.Button{
			{
				s.button(lang, "buttons.new_order", flows.CallbackNewOrder),
				s.button(lang, "buttons.add_funds", flows.CallbackAddFunds),
			},
			{
				s.button(lang, "buttons.my_account", flows.CallbackMyAccount),
				s.button(lang, "buttons.order_history", flows.CallbackOrderHistory),
			},
			{
				s.button(lang, "buttons.create_ticket", flows.CallbackCreateTicket),
				s.button(lang, "buttons.view_tickets", flows.CallbackViewTickets),
			},
			{
				s.button(lang, "buttons.edit_profile", flows.CallbackEditProfile),
				s.button(lang, "buttons.language", flows.CallbackLanguage),
			},
			{s.button(lang, "buttons.support", flows.CallbackSupport)},
		},
	}
}

func (s *Screens) Balance(lang string, profile *users.Profile) flows.Reply {
	return flows.Reply{
		Text: s.l10n.Get(lang, "balance.text", map[string]interface{}{
			"balance": profile.Balance.StringFixed(2),
			"spent":   profile.TotalSpent.StringFixed(2),
			"orders":  profile.OrdersCount,
		}),
		Buttons: [][]flows.Button{
			{s.button(lang, "buttons.add_funds", flows.CallbackAddFunds)},
			s.menuRow(lang),
		},
	}
}
