package paymentautocheck

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"smmpanel-bot/internal/stories/payment"
)

const name = "payment-autocheck"

// Worker credits top-ups that were paid without the user pressing the
// check button.
type Worker struct {
	payments PaymentService
	users    UserService
	notifier Notifier
	l10n     Localizer
	metrics  Recorder
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron

	// payments being checked right now
	processing sync.Map
}

func NewWorker(
	payments PaymentService,
	users UserService,
	notifier Notifier,
	l10n Localizer,
	metrics Recorder,
	schedule string,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		payments: payments,
		users:    users,
		notifier: notifier,
		l10n:     l10n,
		metrics:  metrics,
		schedule: schedule,
		logger:   logger.With("worker", name),
		cron:     cron.New(),
	}
}

func (w *Worker) Name() string {
	return name
}

func (w *Worker) Start() error {
	if w.payments.IsMockPayment() {
		w.logger.Info("Mock payment mode enabled, skipping payment auto-check worker")
		return nil
	}

	_, err := w.cron.AddFunc(w.schedule, func() {
		defer func() {
			if r := recover(); r != nil {
				w.logger.Error("Panic in payment autocheck worker", "panic", r)
			}
		}()
		err := w.run(context.Background())
		w.metrics.WorkerRun(name, err)
		if err != nil {
			w.logger.Error("Payment autocheck worker failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule payment autocheck worker: %w", err)
	}

	w.cron.Start()
	w.logger.Info("Payment autocheck worker started", "schedule", w.schedule)
	return nil
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping payment autocheck worker")
	<-w.cron.Stop().Done()
}

func (w *Worker) run(ctx context.Context) error {
	open, err := w.payments.ListOpen(ctx)
	if err != nil {
		return fmt.Errorf("list open payments: %w", err)
	}

	var wg sync.WaitGroup
	for _, p := range open {
		wg.Add(1)
		go func(p *payment.Payment) {
			defer wg.Done()
			if err := w.CheckAndNotify(ctx, p.ID); err != nil {
				w.logger.Error("Failed to check payment", "payment_id", p.ID, "user_id", p.UserID, "error", err)
			}
		}(p)
	}
	wg.Wait()

	return nil
}

// CheckAndNotify credits a paid top-up and tells its owner. A payment that
// is already being checked is skipped.
func (w *Worker) CheckAndNotify(ctx context.Context, paymentID int64) error {
	if _, loaded := w.processing.LoadOrStore(paymentID, true); loaded {
		return nil
	}
	defer w.processing.Delete(paymentID)

	res, err := w.payments.CheckTopUp(ctx, paymentID)
	if err != nil {
		return err
	}
	if !res.JustCredited {
		return nil
	}

	userID := res.Payment.UserID
	w.metrics.TopUpCredited()
	w.logger.Info("Top-up credited in background", "payment_id", paymentID, "user_id", userID)

	lang := "en"
	if profile, err := w.users.GetProfile(ctx, userID); err == nil && profile.Language != "" {
		lang = profile.Language
	}

	w.notifier.NotifyUser(ctx, userID, w.l10n.Get(lang, "funds.auto_credited", map[string]interface{}{
		"amount":  res.Payment.Amount.StringFixed(2),
		"balance": res.Balance.StringFixed(2),
	}))
	return nil
}
