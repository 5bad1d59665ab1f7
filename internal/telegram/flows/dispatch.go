package flows

import (
	"context"
	"slices"
	"strings"

	"smmpanel-bot/internal/stories/users"
)

// handleCallback routes button presses. Their input is a closed set of ids,
// so they move the conversation without going through validators.
func (e *Engine) handleCallback(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	data := ev.Payload

	switch data {
	case CallbackMainMenu:
		if err := e.clear(ctx, ev.UserID); err != nil {
			return Result{}, err
		}
		if !profile.AccountCreated {
			return Say(e.welcome(lang, profile)), nil
		}
		return Say(e.screens.MainMenu(lang, profile)), nil

	case CallbackCreateAccount:
		return e.startAccount(ctx, ev, profile, lang)
	case CallbackLoginAccount:
		return e.startLogin(ctx, ev, profile, lang)
	case CallbackUseTGName:
		return e.useTelegramName(ctx, ev, profile, lang)
	case CallbackShareContact:
		return e.shareContact(ctx, ev, lang)
	case CallbackEnterPhone:
		return e.enterPhoneManually(ctx, ev, lang)

	case CallbackLanguage:
		return Say(e.languagePicker(lang)), nil
	case CallbackSupport:
		return e.say(lang, "support.text", map[string]interface{}{"support": e.limits.SupportUsername}), nil

	case CallbackMyAccount:
		return e.gated(profile, lang, func() (Result, error) {
			reply, err := e.screens.Account(ctx, lang, profile)
			return Say(reply), err
		})
	case CallbackBalance:
		return e.gated(profile, lang, func() (Result, error) {
			return Say(e.screens.Balance(lang, profile)), nil
		})
	case CallbackOrderHistory:
		return e.gated(profile, lang, func() (Result, error) {
			reply, err := e.screens.OrderHistory(ctx, lang, profile)
			return Say(reply), err
		})
	case CallbackViewTickets:
		return e.gated(profile, lang, func() (Result, error) {
			reply, err := e.screens.Tickets(ctx, lang, profile)
			return Say(reply), err
		})

	case CallbackNewOrder:
		return e.gated(profile, lang, func() (Result, error) {
			return e.choosePlatform(ctx, ev, lang)
		})
	case CallbackConfirmOrder:
		return e.gated(profile, lang, func() (Result, error) {
			return e.confirmOrder(ctx, ev, profile, lang)
		})
	case CallbackCancelOrder:
		return e.gated(profile, lang, func() (Result, error) {
			return e.cancelOrder(ctx, ev, lang)
		})

	case CallbackAddFunds:
		return e.gated(profile, lang, func() (Result, error) {
			return e.chooseAmount(lang, profile), nil
		})
	case CallbackAmountCustom:
		return e.gated(profile, lang, func() (Result, error) {
			return e.customAmount(ctx, ev, lang)
		})

	case CallbackCreateTicket:
		return e.gated(profile, lang, func() (Result, error) {
			return e.startTicket(ctx, ev, lang)
		})

	case CallbackEditProfile:
		return e.gated(profile, lang, func() (Result, error) {
			return Say(e.editMenu(lang, profile)), nil
		})
	}

	switch {
	case strings.HasPrefix(data, PrefixLanguage):
		return e.setLanguage(ctx, ev, profile, strings.TrimPrefix(data, PrefixLanguage))

	case strings.HasPrefix(data, PrefixPlatform):
		return e.gated(profile, lang, func() (Result, error) {
			return e.chooseService(lang, strings.TrimPrefix(data, PrefixPlatform))
		})

	case strings.HasPrefix(data, PrefixService):
		platform, service, ok := parseServiceData(strings.TrimPrefix(data, PrefixService))
		if !ok {
			return e.expired(lang), nil
		}
		return e.gated(profile, lang, func() (Result, error) {
			return e.chooseQuality(lang, platform, service)
		})

	case strings.HasPrefix(data, PrefixQuality):
		platform, service, quality, ok := parseQualityData(strings.TrimPrefix(data, PrefixQuality))
		if !ok {
			return e.expired(lang), nil
		}
		return e.gated(profile, lang, func() (Result, error) {
			return e.startOrder(ctx, ev, lang, platform, service, quality)
		})

	case strings.HasPrefix(data, PrefixAmount):
		return e.gated(profile, lang, func() (Result, error) {
			return e.presetAmount(ctx, ev, profile, lang, strings.TrimPrefix(data, PrefixAmount))
		})

	case strings.HasPrefix(data, PrefixCheckPayment):
		return e.gated(profile, lang, func() (Result, error) {
			return e.checkPayment(ctx, ev, lang, strings.TrimPrefix(data, PrefixCheckPayment))
		})

	case strings.HasPrefix(data, PrefixEdit):
		return e.gated(profile, lang, func() (Result, error) {
			return e.startEdit(ctx, ev, lang, strings.TrimPrefix(data, PrefixEdit))
		})
	}

	return e.expired(lang), nil
}

// gated runs next only for users with a created account and redirects
// everybody else to account creation.
func (e *Engine) gated(profile *users.Profile, lang string, next func() (Result, error)) (Result, error) {
	if res, ok := e.requireAccount(profile, lang); !ok {
		return res, nil
	}
	return next()
}

func (e *Engine) languagePicker(lang string) Reply {
	return Reply{
		Text: e.text(lang, "language.choose", nil),
		Buttons: [][]Button{{
			{Text: "English", Data: PrefixLanguage + "en"},
			{Text: "हिन्दी", Data: PrefixLanguage + "hi"},
		}},
	}
}

func (e *Engine) setLanguage(ctx context.Context, ev Event, profile *users.Profile, code string) (Result, error) {
	if !slices.Contains(languages, code) {
		return e.expired(languageOf(profile)), nil
	}
	if err := e.users.SetLanguage(ctx, ev.UserID, code); err != nil {
		return Result{}, err
	}
	profile.Language = code

	next := e.welcome(code, profile)
	if profile.AccountCreated {
		next = e.screens.MainMenu(code, profile)
	}
	return Say(Reply{Text: e.text(code, "language.changed", nil)}, next), nil
}
