package flows

import (
	"strings"

	"smmpanel-bot/internal/telegram/states"
)

func (e *Engine) promptName(lang string, _ states.Conversation) Reply {
	return Reply{
		Text: e.text(lang, "account.ask_name", nil),
		Buttons: [][]Button{
			{{Text: e.text(lang, "buttons.use_telegram_name", nil), Data: CallbackUseTGName}},
		},
	}
}

func (e *Engine) promptPhone(key string) func(string, states.Conversation) Reply {
	return func(lang string, _ states.Conversation) Reply {
		return Reply{
			Text: e.text(lang, key, nil),
			Buttons: [][]Button{
				{{Text: e.text(lang, "buttons.share_contact", nil), Data: CallbackShareContact}},
			},
		}
	}
}

// contactKeyboard asks the client to offer its own phone number.
func (e *Engine) contactKeyboard(lang string) Reply {
	return Reply{
		Text:          e.text(lang, "contact.tap_button", nil),
		ContactButton: e.text(lang, "buttons.send_contact", nil),
	}
}

func (e *Engine) promptText(key string, removeKeyboard bool) func(string, states.Conversation) Reply {
	return func(lang string, _ states.Conversation) Reply {
		return Reply{Text: e.text(lang, key, nil), RemoveKeyboard: removeKeyboard}
	}
}

func (e *Engine) promptLink(lang string, conv states.Conversation) Reply {
	platform, _ := conv.Get(states.KeyPlatform)
	title := platform
	if p, ok := e.catalog.Platform(platform); ok {
		title = p.Title
	}

	return Reply{
		Text: e.text(lang, "order.ask_link", map[string]interface{}{
			"platform": title,
			"domains":  strings.Join(e.catalog.Domains(platform), ", "),
		}),
		Buttons: [][]Button{{e.menuButton(lang)}},
	}
}

func (e *Engine) promptQuantity(lang string, _ states.Conversation) Reply {
	return Reply{
		Text: e.text(lang, "order.ask_quantity", map[string]interface{}{
			"min": e.limits.MinQuantity,
			"max": e.limits.MaxQuantity,
		}),
	}
}

func (e *Engine) promptAmount(lang string, _ states.Conversation) Reply {
	return Reply{
		Text: e.text(lang, "funds.ask_amount", map[string]interface{}{
			"min": e.limits.MinAmount,
			"max": e.limits.MaxAmount,
		}),
	}
}

func (e *Engine) promptEdit(lang string, conv states.Conversation) Reply {
	field := editFieldsOf[conv.Step]
	return Reply{
		Text: e.text(lang, "edit.ask_"+string(field), nil) + "\n\n" + e.text(lang, "edit.cancel_hint", nil),
	}
}
