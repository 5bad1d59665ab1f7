package paymentautocheck

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"smmpanel-bot/internal/stories/payment"
	"smmpanel-bot/internal/stories/users"
)

type fakePayments struct {
	mu      sync.Mutex
	open    []*payment.Payment
	results map[int64]*payment.CheckResult
	checked []int64
}

func (f *fakePayments) ListOpen(context.Context) ([]*payment.Payment, error) {
	return f.open, nil
}

func (f *fakePayments) CheckTopUp(_ context.Context, id int64) (*payment.CheckResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checked = append(f.checked, id)
	res, ok := f.results[id]
	if !ok {
		return nil, errors.New("provider unavailable")
	}
	return res, nil
}

func (f *fakePayments) IsMockPayment() bool { return false }

type fakeUsers map[int64]*users.Profile

func (f fakeUsers) GetProfile(_ context.Context, id int64) (*users.Profile, error) {
	p, ok := f[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return p, nil
}

type sentNotice struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotice
}

func (f *fakeNotifier) NotifyUser(_ context.Context, chatID int64, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotice{chatID: chatID, text: text})
}

type langLocalizer struct{}

func (langLocalizer) Get(lang, key string, _ map[string]interface{}) string {
	return lang + ":" + key
}

type nopRecorder struct{}

func (nopRecorder) TopUpCredited()          {}
func (nopRecorder) WorkerRun(string, error) {}

func TestRunNotifiesOnlyFreshCredits(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	payments := &fakePayments{
		open: []*payment.Payment{{ID: 1, UserID: 10}, {ID: 2, UserID: 20}, {ID: 3, UserID: 30}},
		results: map[int64]*payment.CheckResult{
			1: {Payment: &payment.Payment{ID: 1, UserID: 10, Amount: amount, Credited: true}, JustCredited: true, Balance: amount},
			2: {Payment: &payment.Payment{ID: 2, UserID: 20, Amount: amount, Status: payment.StatusPending}},
		},
	}
	notifier := &fakeNotifier{}
	w := NewWorker(payments, fakeUsers{10: {TelegramID: 10, Language: "hi"}}, notifier, langLocalizer{}, nopRecorder{}, "@every 1m",
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := w.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(payments.checked) != 3 {
		t.Errorf("checked %v, want all three", payments.checked)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].chatID != 10 || notifier.sent[0].text != "hi:funds.auto_credited" {
		t.Errorf("notices = %+v", notifier.sent)
	}
}

func TestRunSkipsPaymentsInFlight(t *testing.T) {
	payments := &fakePayments{open: []*payment.Payment{{ID: 1, UserID: 10}}}
	w := NewWorker(payments, fakeUsers{}, &fakeNotifier{}, langLocalizer{}, nopRecorder{}, "@every 1m",
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	w.processing.Store(int64(1), true)
	if err := w.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(payments.checked) != 0 {
		t.Errorf("checked %v while in flight", payments.checked)
	}
}
