package flows

import (
	"context"

	"github.com/shopspring/decimal"

	"smmpanel-bot/internal/stories/catalog"
	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/payment"
	"smmpanel-bot/internal/stories/tickets"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

type (
	stateStore interface {
		Get(ctx context.Context, userID int64) (states.Conversation, error)
		Set(ctx context.Context, userID int64, conv states.Conversation) error
		Delete(ctx context.Context, userID int64) error
	}

	userService interface {
		GetOrCreate(ctx context.Context, identity users.Identity) (*users.Profile, error)
		GetProfile(ctx context.Context, telegramID int64) (*users.Profile, error)
		PhoneTakenByOther(ctx context.Context, telegramID int64, phone string) (bool, error)
		CompleteAccount(ctx context.Context, telegramID int64, details users.AccountDetails) (*users.Profile, error)
		Login(ctx context.Context, telegramID int64, phone string) (users.LoginOutcome, error)
		UpdateField(ctx context.Context, telegramID int64, field users.Field, value string) (*users.Profile, error)
		SetLanguage(ctx context.Context, telegramID int64, language string) error
	}

	orderService interface {
		CreatePending(ctx context.Context, order orders.PendingOrder) (*orders.PendingOrder, error)
		Cancel(ctx context.Context, userID int64) (bool, error)
		Confirm(ctx context.Context, userID int64) (*orders.Confirmation, error)
	}

	paymentService interface {
		CreateTopUp(ctx context.Context, req payment.TopUpRequest) (*payment.Payment, error)
		CheckTopUp(ctx context.Context, paymentID int64) (*payment.CheckResult, error)
		IsMockPayment() bool
	}

	ticketService interface {
		Open(ctx context.Context, userID int64, subject, description string) (*tickets.Ticket, error)
	}

	catalogService interface {
		Platforms() []catalog.Platform
		Platform(key string) (catalog.Platform, bool)
		Services(platform string) []catalog.Service
		Service(platform, key string) (catalog.Service, bool)
		Qualities() []catalog.Quality
		Quality(key string) (catalog.Quality, bool)
		Domains(platform string) []string
		Price(service catalog.Service, quality catalog.Quality, quantity int) decimal.Decimal
	}

	// screens renders the read-only views reachable from the menu.
	screens interface {
		MainMenu(lang string, profile *users.Profile) Reply
		Account(ctx context.Context, lang string, profile *users.Profile) (Reply, error)
		OrderHistory(ctx context.Context, lang string, profile *users.Profile) (Reply, error)
		Tickets(ctx context.Context, lang string, profile *users.Profile) (Reply, error)
		Balance(lang string, profile *users.Profile) Reply
	}

	// notifier delivers admin notices in the background. It never blocks
	// the caller and never reports failure.
	notifier interface {
		NotifyAdmins(ctx context.Context, text string)
	}

	localizer interface {
		Get(lang, key string, params map[string]interface{}) string
	}

	recorder interface {
		EventReceived(channel string)
		InputRejected(step string)
		FlowCompleted(flow string)
		OrderConfirmed()
		BalanceRefused()
		TopUpCredited()
	}
)
