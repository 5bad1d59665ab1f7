package paymentautocheck

import (
	"context"

	"smmpanel-bot/internal/stories/payment"
	"smmpanel-bot/internal/stories/users"
)

type (
	PaymentService interface {
		ListOpen(ctx context.Context) ([]*payment.Payment, error)
		CheckTopUp(ctx context.Context, paymentID int64) (*payment.CheckResult, error)
		IsMockPayment() bool
	}

	UserService interface {
		GetProfile(ctx context.Context, telegramID int64) (*users.Profile, error)
	}

	Notifier interface {
		NotifyUser(ctx context.Context, chatID int64, text string)
	}

	Localizer interface {
		Get(lang, key string, params map[string]interface{}) string
	}

	Recorder interface {
		TopUpCredited()
		WorkerRun(worker string, err error)
	}
)
