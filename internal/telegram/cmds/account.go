package cmds

import (
	"context"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/flows"
)

func (s *Screens) Account(_ context.Context, lang string, profile *users.Profile) (flows.Reply, error) {
	return flows.Reply{
		Text: s.l10n.Get(lang, "account.details", map[string]interface{}{
			"name":     profile.FullName,
			"phone":    profile.PhoneNumber,
			"email":    profile.Email,
			"balance":  profile.Balance.StringFixed(2),
			"spent":    profile.TotalSpent.StringFixed(2),
			"orders":   profile.OrdersCount,
			"referral": profile.ReferralCode,
			"api_key":  profile.APIKey,
			"since":    profile.CreatedAt.Format("02 Jan 2006"),
		}),
		Buttons: [][]flows.Button{
			{s.button(lang, "buttons.edit_profile", flows.CallbackEditProfile)},
			s.menuRow(lang),
		},
	}, nil
}
