package environment

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"smmpanel-bot/internal/config"
	"smmpanel-bot/internal/ids"
	"smmpanel-bot/internal/localization"
	"smmpanel-bot/internal/metrics"
	"smmpanel-bot/internal/storage"
	"smmpanel-bot/internal/stories/catalog"
	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/payment"
	"smmpanel-bot/internal/stories/tickets"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram"
	"smmpanel-bot/internal/telegram/cmds"
	"smmpanel-bot/internal/telegram/flows"
	"smmpanel-bot/internal/telegram/states"
	"smmpanel-bot/internal/workers"
	"smmpanel-bot/internal/workers/paymentautocheck"
)

type Services struct {
	TelegramRouter   *telegram.Router
	Notifier         *telegram.Notifier
	Localization     *localization.Service
	PaymentAutoCheck *paymentautocheck.Worker
	WorkerManager    *workers.Manager
	Metrics          *metrics.Metrics
}

func newServices(_ context.Context, clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	var s Services

	startedAt := time.Now()

	if cfg.Funds.CardFee().LessThan(decimal.Zero) || cfg.Funds.NetbankingFee().LessThan(decimal.Zero) {
		return nil, errors.New("payment fees must not be negative")
	}

	l10n, err := localization.NewService()
	if err != nil {
		return nil, errors.Wrap(err, "load translations")
	}
	s.Localization = l10n
	s.Metrics = metrics.Registry(cfg.Metrics.Namespace)

	storageImpl := storage.New(clients.SQLiteDB)
	idGen := ids.New(time.Now)

	userService := users.NewService(storageImpl, idGen)
	orderService := orders.NewService(storageImpl, idGen, logger)
	ticketService := tickets.NewService(storageImpl, idGen)
	paymentService := payment.NewService(storageImpl, clients.YooKassa, cfg.YooKassa.MockPayment, logger)

	var stateStore states.Store = states.NewManager()
	if clients.Redis != nil {
		stateStore = states.NewRedisStore(clients.Redis, cfg.State.KeyPrefix, cfg.State.TTL)
	}
	logger.Info("Conversation store selected", "backend", cfg.State.Backend)

	adminChecker := telegram.NewAdminChecker(&cfg.Telegram)
	s.Notifier = telegram.NewNotifier(clients.TelegramBot, adminChecker, s.Metrics, logger)

	engine := flows.NewEngine(
		stateStore,
		userService,
		orderService,
		paymentService,
		ticketService,
		catalog.New(),
		cmds.NewScreens(orderService, ticketService, l10n),
		s.Notifier,
		l10n,
		s.Metrics,
		flows.NewPresence(startedAt),
		flows.Limits{
			MinQuantity:          cfg.Orders.MinQuantity,
			MaxQuantity:          cfg.Orders.MaxQuantity,
			MinAmount:            cfg.Funds.MinAmount,
			MaxAmount:            cfg.Funds.MaxAmount,
			CardFeePercent:       cfg.Funds.CardFee(),
			NetbankingFeePercent: cfg.Funds.NetbankingFee(),
			ProcessingDelay:      cfg.Account.ProcessingDelay,
			SupportUsername:      cfg.Telegram.SupportUsername,
		},
		logger,
	)

	s.TelegramRouter = telegram.NewRouter(clients.TelegramBot, engine, logger)

	s.PaymentAutoCheck = paymentautocheck.NewWorker(
		paymentService,
		userService,
		s.Notifier,
		l10n,
		s.Metrics,
		cfg.Workers.PaymentCheckSchedule,
		logger,
	)
	s.WorkerManager = workers.NewManager(logger, s.PaymentAutoCheck)

	return &s, nil
}
