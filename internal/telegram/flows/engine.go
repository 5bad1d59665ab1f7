package flows

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

const defaultLanguage = "en"

// Limits are the configurable bounds the flows enforce.
type Limits struct {
	MinQuantity          int
	MaxQuantity          int
	MinAmount            int
	MaxAmount            int
	CardFeePercent       decimal.Decimal
	NetbankingFeePercent decimal.Decimal
	ProcessingDelay      time.Duration
	SupportUsername      string
}

// Engine turns inbound events into replies. It owns the per-user
// conversation: which step the user is on and what was collected so far.
type Engine struct {
	states   stateStore
	users    userService
	orders   orderService
	payments paymentService
	tickets  ticketService
	catalog  catalogService
	screens  screens
	notifier notifier
	l10n     localizer
	metrics  recorder
	presence *Presence
	limits   Limits
	table    map[states.Step]rule
	now      func() time.Time
	logger   *slog.Logger
}

func NewEngine(
	stateStore stateStore,
	userService userService,
	orderService orderService,
	paymentService paymentService,
	ticketService ticketService,
	catalog catalogService,
	screens screens,
	notifier notifier,
	l10n localizer,
	metrics recorder,
	presence *Presence,
	limits Limits,
	logger *slog.Logger,
) *Engine {
	e := &Engine{
		states:   stateStore,
		users:    userService,
		orders:   orderService,
		payments: paymentService,
		tickets:  ticketService,
		catalog:  catalog,
		screens:  screens,
		notifier: notifier,
		l10n:     l10n,
		metrics:  metrics,
		presence: presence,
		limits:   limits,
		now:      time.Now,
		logger:   logger.With("component", "flows"),
	}
	e.table = e.buildTable()
	return e
}

// Handle processes one event. Failures never escape: the user gets a reply
// and, on internal errors or panics, an idle conversation.
func (e *Engine) Handle(ctx context.Context, ev Event) (res Result) {
	e.metrics.EventReceived(string(ev.Channel))

	lang := defaultLanguage
	defer func() {
		if p := recover(); p != nil {
			res = e.fail(ctx, ev.UserID, lang, fmt.Errorf("panic: %v", p))
		}
	}()

	if e.presence.Stale(ev.SentAt) {
		e.presence.Mark(ev.UserID)
		e.logger.Debug("Dropping stale event", "user_id", ev.UserID, "sent_at", ev.SentAt)
		return Result{}
	}
	backOnline := e.presence.Consume(ev.UserID)

	profile, err := e.users.GetOrCreate(ctx, users.Identity{
		TelegramID: ev.UserID,
		Username:   ev.Username,
		FirstName:  ev.FirstName,
	})
	if err != nil {
		return e.fail(ctx, ev.UserID, defaultLanguage, err)
	}
	lang = languageOf(profile)

	res, err = e.dispatch(ctx, ev, profile, lang)
	if err != nil {
		res = e.fail(ctx, ev.UserID, lang, err)
	}

	if backOnline {
		res.Replies = append([]Reply{{Text: e.text(lang, "presence.back_online", nil)}}, res.Replies...)
	}
	return res
}

func (e *Engine) dispatch(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	switch ev.Channel {
	case ChannelCommand:
		return e.handleCommand(ctx, ev, profile, lang)
	case ChannelCallback:
		return e.handleCallback(ctx, ev, profile, lang)
	default:
		return e.handleInput(ctx, ev, profile, lang)
	}
}

func (e *Engine) handleCommand(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	switch ev.Payload {
	case CommandStart, CommandMenu:
		if err := e.states.Delete(ctx, ev.UserID); err != nil {
			return Result{}, err
		}
		if !profile.AccountCreated {
			return Say(e.welcome(lang, profile)), nil
		}
		return Say(e.screens.MainMenu(lang, profile)), nil

	case CommandCancel:
		conv, err := e.states.Get(ctx, ev.UserID)
		if err != nil {
			return Result{}, err
		}
		if !conv.Step.IsEditing() {
			return e.say(lang, "cancel.nothing", nil), nil
		}
		if err := e.states.Delete(ctx, ev.UserID); err != nil {
			return Result{}, err
		}
		return Say(
			Reply{Text: e.text(lang, "cancel.done", nil), RemoveKeyboard: true},
			e.editMenu(lang, profile),
		), nil

	case CommandBalance:
		if res, ok := e.requireAccount(profile, lang); !ok {
			return res, nil
		}
		return Say(e.screens.Balance(lang, profile)), nil

	case CommandHelp:
		return e.say(lang, "help.text", map[string]interface{}{"support": e.limits.SupportUsername}), nil
	}

	return e.idleReply(profile, lang), nil
}

// requireAccount is applied to every action that needs a created account.
func (e *Engine) requireAccount(profile *users.Profile, lang string) (Result, bool) {
	if profile.AccountCreated {
		return Result{}, true
	}
	return Say(Reply{
		Text: e.text(lang, "account.required", nil),
		Buttons: [][]Button{
			{{Text: e.text(lang, "buttons.create_account", nil), Data: CallbackCreateAccount}},
			{{Text: e.text(lang, "buttons.login", nil), Data: CallbackLoginAccount}},
		},
	}), false
}

// idleReply is what a user gets when nothing is being asked.
func (e *Engine) idleReply(profile *users.Profile, lang string) Result {
	if res, ok := e.requireAccount(profile, lang); !ok {
		return res
	}
	return Say(Reply{
		Text:    e.text(lang, "menu.use_menu", nil),
		Buttons: [][]Button{{e.menuButton(lang)}},
	})
}

func (e *Engine) welcome(lang string, profile *users.Profile) Reply {
	return Reply{
		Text: e.text(lang, "welcome.new", map[string]interface{}{"name": profile.DisplayName()}),
		Buttons: [][]Button{
			{{Text: e.text(lang, "buttons.create_account", nil), Data: CallbackCreateAccount}},
			{{Text: e.text(lang, "buttons.login", nil), Data: CallbackLoginAccount}},
			{
				{Text: "English", Data: PrefixLanguage + "en"},
				{Text: "हिन्दी", Data: PrefixLanguage + "hi"},
			},
		},
	}
}

// fail logs err, resets the conversation and tells the user to start over.
func (e *Engine) fail(ctx context.Context, userID int64, lang string, err error) Result {
	e.logger.Error("Event handling failed", "user_id", userID, slog.Any("error", err))

	if delErr := e.states.Delete(ctx, userID); delErr != nil {
		e.logger.Error("Failed to reset conversation", "user_id", userID, slog.Any("error", delErr))
	}

	return Say(Reply{Text: e.text(lang, "errors.generic", nil), RemoveKeyboard: true})
}

func (e *Engine) text(lang, key string, params map[string]interface{}) string {
	return e.l10n.Get(lang, key, params)
}

func (e *Engine) say(lang, key string, params map[string]interface{}) Result {
	return Say(Reply{Text: e.text(lang, key, params)})
}

func (e *Engine) menuButton(lang string) Button {
	return Button{Text: e.text(lang, "buttons.main_menu", nil), Data: CallbackMainMenu}
}

func languageOf(profile *users.Profile) string {
	if profile.Language == "" {
		return defaultLanguage
	}
	return profile.Language
}
