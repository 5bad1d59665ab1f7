package flows

import (
	"context"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

func (e *Engine) startLogin(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	if profile.AccountCreated {
		return Say(Reply{
			Text:    e.text(lang, "account.already_created", nil),
			Buttons: [][]Button{{e.menuButton(lang)}},
		}), nil
	}
	return e.enter(ctx, ev.UserID, lang, states.Start(states.LoginWaitPhone, nil))
}

// finalizeLogin matches the phone against stored accounts. The conversation
// ends whatever the outcome.
func (e *Engine) finalizeLogin(ctx context.Context, ev Event, _ *users.Profile, conv states.Conversation, lang string) (Result, error) {
	data, err := required(conv, states.KeyPhoneNumber)
	if err != nil {
		return Result{}, err
	}

	outcome, err := e.users.Login(ctx, ev.UserID, data[states.KeyPhoneNumber])
	if err != nil {
		return Result{}, err
	}
	if err := e.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}

	switch outcome {
	case users.LoginOK:
		e.metrics.FlowCompleted("login")
		profile, err := e.users.GetProfile(ctx, ev.UserID)
		if err != nil {
			return Result{}, err
		}
		menu := e.screens.MainMenu(lang, profile)
		menu.Text = e.text(lang, "login.success", map[string]interface{}{"name": profile.DisplayName()}) + "\n\n" + menu.Text
		menu.RemoveKeyboard = true
		return Say(menu), nil

	case users.LoginMismatch:
		return Say(Reply{Text: e.text(lang, "login.mismatch", nil), RemoveKeyboard: true}), nil

	default:
		return Say(Reply{
			Text: e.text(lang, "login.not_found", nil),
			Buttons: [][]Button{
				{{Text: e.text(lang, "buttons.create_account", nil), Data: CallbackCreateAccount}},
			},
		}), nil
	}
}
