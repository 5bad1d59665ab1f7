package flows

import (
	"context"
	"strings"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

func (e *Engine) startAccount(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	if profile.AccountCreated {
		return Say(Reply{
			Text:    e.text(lang, "account.already_created", nil),
			Buttons: [][]Button{{e.menuButton(lang)}},
		}), nil
	}
	return e.enter(ctx, ev.UserID, lang, states.Start(states.AccountWaitName, nil))
}

// useTelegramName fills the name step with the platform display name.
func (e *Engine) useTelegramName(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	conv, err := e.states.Get(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}
	if conv.Step != states.AccountWaitName {
		return e.expired(lang), nil
	}

	name := strings.TrimSpace(ev.DisplayName())
	if name == "" {
		return e.say(lang, "account.no_telegram_name", nil), nil
	}

	return e.advance(ctx, ev, profile, lang, conv, e.table[states.AccountWaitName], name)
}

func (e *Engine) shareContact(ctx context.Context, ev Event, lang string) (Result, error) {
	conv, err := e.states.Get(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}
	if !acceptsContact(e.table, conv.Step) {
		return e.expired(lang), nil
	}
	return Say(e.contactKeyboard(lang)), nil
}

func (e *Engine) enterPhoneManually(ctx context.Context, ev Event, lang string) (Result, error) {
	conv, err := e.states.Get(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}
	if !acceptsContact(e.table, conv.Step) {
		return e.expired(lang), nil
	}
	return Say(Reply{Text: e.text(lang, "account.ask_phone_manual", nil), RemoveKeyboard: true}), nil
}

func acceptsContact(table map[states.Step]rule, step states.Step) bool {
	r, ok := table[step]
	return ok && r.accepts(ChannelContact)
}

// finalizeAccount writes name, phone and email and flips the account flag in
// one update. The success message follows a short processing pause.
func (e *Engine) finalizeAccount(ctx context.Context, ev Event, _ *users.Profile, conv states.Conversation, lang string) (Result, error) {
	data, err := required(conv, states.KeyFullName, states.KeyPhoneNumber, states.KeyEmail)
	if err != nil {
		return Result{}, err
	}

	updated, err := e.users.CompleteAccount(ctx, ev.UserID, users.AccountDetails{
		FullName:    data[states.KeyFullName],
		PhoneNumber: data[states.KeyPhoneNumber],
		Email:       data[states.KeyEmail],
	})
	if err != nil {
		return Result{}, err
	}

	if err := e.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}
	e.metrics.FlowCompleted("account")
	e.logger.Info("Account created", "user_id", ev.UserID)

	done := e.screens.MainMenu(lang, updated)
	done.Text = e.text(lang, "account.created", map[string]interface{}{
		"name":  updated.FullName,
		"phone": updated.PhoneNumber,
		"email": updated.Email,
	}) + "\n\n" + done.Text
	done.Delay = e.limits.ProcessingDelay

	return Say(
		Reply{Text: e.text(lang, "account.processing", nil), RemoveKeyboard: true},
		done,
	), nil
}

// enter starts conv and prompts for its step.
func (e *Engine) enter(ctx context.Context, userID int64, lang string, conv states.Conversation) (Result, error) {
	if err := e.states.Set(ctx, userID, conv); err != nil {
		return Result{}, err
	}
	return Say(e.table[conv.Step].prompt(lang, conv)), nil
}

func (e *Engine) expired(lang string) Result {
	return Say(Reply{
		Text:    e.text(lang, "context.expired", nil),
		Buttons: [][]Button{{e.menuButton(lang)}},
	})
}
