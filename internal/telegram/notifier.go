package telegram

import (
	"context"
	"log/slog"
	"sync"
)

type sender interface {
	SendMessage(chatID int64, text string) error
}

type admins interface {
	AdminIDs() []int64
}

type notifyRecorder interface {
	NotificationSent(err error)
}

// Notifier sends out-of-band messages. Delivery runs in the background and
// failures are only logged, so callers never wait on or fail because of it.
type Notifier struct {
	bot     sender
	admins  admins
	metrics notifyRecorder
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewNotifier(bot sender, admins admins, metrics notifyRecorder, logger *slog.Logger) *Notifier {
	return &Notifier{
		bot:     bot,
		admins:  admins,
		metrics: metrics,
		logger:  logger.With("component", "notifier"),
	}
}

func (n *Notifier) NotifyAdmins(ctx context.Context, text string) {
	for _, id := range n.admins.AdminIDs() {
		n.NotifyUser(ctx, id, text)
	}
}

func (n *Notifier) NotifyUser(_ context.Context, chatID int64, text string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				n.logger.Error("Panic while notifying", "chat_id", chatID, "panic", p)
			}
		}()

		err := n.bot.SendMessage(chatID, text)
		n.metrics.NotificationSent(err)
		if err != nil {
			n.logger.Warn("Notification not delivered", "chat_id", chatID, slog.Any("error", err))
		}
	}()
}

// Wait blocks until every queued notification has been attempted.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
