package flows

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"smmpanel-bot/internal/stories/catalog"
	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/payment"
	"smmpanel-bot/internal/stories/tickets"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

type fakeUsers struct {
	profiles map[int64]*users.Profile
	panics   bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{profiles: make(map[int64]*users.Profile)}
}

func (f *fakeUsers) GetOrCreate(_ context.Context, identity users.Identity) (*users.Profile, error) {
	if f.panics {
		panic("users store corrupted")
	}
	if p, ok := f.profiles[identity.TelegramID]; ok {
		cp := *p
		return &cp, nil
	}
	p := &users.Profile{
		TelegramID:   identity.TelegramID,
		Username:     identity.Username,
		FirstName:    identity.FirstName,
		ReferralCode: fmt.Sprintf("ISP%06d", identity.TelegramID),
		APIKey:       fmt.Sprintf("ISP-%d", identity.TelegramID),
	}
	f.profiles[identity.TelegramID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeUsers) GetProfile(_ context.Context, telegramID int64) (*users.Profile, error) {
	p, ok := f.profiles[telegramID]
	if !ok {
		return nil, users.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeUsers) PhoneTakenByOther(_ context.Context, telegramID int64, phone string) (bool, error) {
	for _, p := range f.profiles {
		if p.PhoneNumber == phone && p.TelegramID != telegramID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) CompleteAccount(_ context.Context, telegramID int64, details users.AccountDetails) (*users.Profile, error) {
	p := f.profiles[telegramID]
	p.FullName = details.FullName
	p.PhoneNumber = details.PhoneNumber
	p.Email = details.Email
	p.AccountCreated = true
	cp := *p
	return &cp, nil
}

func (f *fakeUsers) Login(_ context.Context, telegramID int64, phone string) (users.LoginOutcome, error) {
	for _, p := range f.profiles {
		if p.PhoneNumber != phone {
			continue
		}
		if p.TelegramID != telegramID {
			return users.LoginMismatch, nil
		}
		p.AccountCreated = true
		return users.LoginOK, nil
	}
	return users.LoginNotFound, nil
}

func (f *fakeUsers) UpdateField(_ context.Context, telegramID int64, field users.Field, value string) (*users.Profile, error) {
	p := f.profiles[telegramID]
	switch field {
	case users.FieldName:
		p.FullName = value
	case users.FieldPhone:
		p.PhoneNumber = value
	case users.FieldEmail:
		p.Email = value
	case users.FieldBio:
		p.Bio = value
	case users.FieldLocation:
		p.Location = value
	case users.FieldBirthday:
		p.Birthday = value
	case users.FieldPhoto:
		p.PhotoFileID = value
	}
	cp := *p
	return &cp, nil
}

func (f *fakeUsers) SetLanguage(_ context.Context, telegramID int64, language string) error {
	f.profiles[telegramID].Language = language
	return nil
}

// created registers a complete account with balance.
func (f *fakeUsers) created(telegramID int64, balance string) *users.Profile {
	p := &users.Profile{
		TelegramID:     telegramID,
		FirstName:      "Rahul",
		FullName:       "Rahul",
		PhoneNumber:    fmt.Sprintf("+9198765%05d", telegramID%100000),
		Email:          "rahul@gmail.com",
		Balance:        decimal.RequireFromString(balance),
		AccountCreated: true,
		ReferralCode:   "ISPABC123",
		APIKey:         "ISP-key",
	}
	f.profiles[telegramID] = p
	return p
}

type fakeOrders struct {
	users   *fakeUsers
	pending map[int64]*orders.PendingOrder
	placed  []*orders.Order
}

func newFakeOrders(u *fakeUsers) *fakeOrders {
	return &fakeOrders{users: u, pending: make(map[int64]*orders.PendingOrder)}
}

func (f *fakeOrders) CreatePending(_ context.Context, order orders.PendingOrder) (*orders.PendingOrder, error) {
	f.pending[order.UserID] = &order
	cp := order
	return &cp, nil
}

func (f *fakeOrders) Cancel(_ context.Context, userID int64) (bool, error) {
	_, ok := f.pending[userID]
	delete(f.pending, userID)
	return ok, nil
}

func (f *fakeOrders) Confirm(_ context.Context, userID int64) (*orders.Confirmation, error) {
	p, ok := f.pending[userID]
	if !ok {
		return nil, orders.ErrPendingOrderNotFound
	}
	profile := f.users.profiles[userID]
	if profile.Balance.LessThan(p.Price) {
		return nil, &orders.InsufficientBalanceError{Required: p.Price, Available: profile.Balance}
	}

	profile.Balance = profile.Balance.Sub(p.Price)
	profile.TotalSpent = profile.TotalSpent.Add(p.Price)
	profile.OrdersCount++
	delete(f.pending, userID)

	o := &orders.Order{
		OrderID:  fmt.Sprintf("ORD%d", len(f.placed)+1),
		UserID:   userID,
		Platform: p.Platform,
		Service:  p.Service,
		Quality:  p.Quality,
		Link:     p.Link,
		Quantity: p.Quantity,
		Price:    p.Price,
		Status:   orders.StatusProcessing,
		Remains:  p.Quantity,
	}
	f.placed = append(f.placed, o)
	return &orders.Confirmation{Order: o, Balance: profile.Balance}, nil
}

type fakePayments struct {
	users    *fakeUsers
	mock     bool
	payments map[int64]*payment.Payment
}

func newFakePayments(u *fakeUsers) *fakePayments {
	return &fakePayments{users: u, payments: make(map[int64]*payment.Payment)}
}

func (f *fakePayments) CreateTopUp(_ context.Context, req payment.TopUpRequest) (*payment.Payment, error) {
	url := "https://pay.example/checkout"
	p := &payment.Payment{
		ID:         int64(len(f.payments) + 1),
		UserID:     req.UserID,
		Amount:     decimal.NewFromInt(req.Rupees),
		Status:     payment.StatusPending,
		PaymentURL: &url,
	}
	if f.mock {
		p.Status = payment.StatusApproved
		p.Credited = true
		profile := f.users.profiles[req.UserID]
		profile.Balance = profile.Balance.Add(p.Amount)
	}
	f.payments[p.ID] = p
	cp := *p
	return &cp, nil
}

// approve marks a payment as paid at the provider.
func (f *fakePayments) approve(id int64) {
	f.payments[id].Status = payment.StatusApproved
}

func (f *fakePayments) CheckTopUp(_ context.Context, paymentID int64) (*payment.CheckResult, error) {
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, payment.ErrPaymentNotFound
	}
	profile := f.users.profiles[p.UserID]
	res := &payment.CheckResult{Balance: profile.Balance}
	if p.Status == payment.StatusApproved && !p.Credited {
		p.Credited = true
		profile.Balance = profile.Balance.Add(p.Amount)
		res.JustCredited = true
		res.Balance = profile.Balance
	}
	cp := *p
	res.Payment = &cp
	return res, nil
}

func (f *fakePayments) IsMockPayment() bool {
	return f.mock
}

type fakeTickets struct {
	opened []*tickets.Ticket
}

func (f *fakeTickets) Open(_ context.Context, userID int64, subject, description string) (*tickets.Ticket, error) {
	t := &tickets.Ticket{
		TicketID:    fmt.Sprintf("TKT%d", len(f.opened)+1),
		UserID:      userID,
		Subject:     subject,
		Description: description,
		Status:      tickets.StatusOpen,
	}
	f.opened = append(f.opened, t)
	return t, nil
}

type fakeScreens struct{}

func (fakeScreens) MainMenu(string, *users.Profile) Reply {
	return Reply{Text: "menu.main"}
}

func (fakeScreens) Account(context.Context, string, *users.Profile) (Reply, error) {
	return Reply{Text: "account.details"}, nil
}

func (fakeScreens) OrderHistory(context.Context, string, *users.Profile) (Reply, error) {
	return Reply{Text: "orders.history"}, nil
}

func (fakeScreens) Tickets(context.Context, string, *users.Profile) (Reply, error) {
	return Reply{Text: "tickets.list"}, nil
}

func (fakeScreens) Balance(string, *users.Profile) Reply {
	return Reply{Text: "balance.text"}
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
}

// keyLocalizer renders the key followed by its params so tests can assert
// on both.
type keyLocalizer struct{}

func (keyLocalizer) Get(_, key string, params map[string]interface{}) string {
	if len(params) == 0 {
		return key
	}
	return key + " " + fmt.Sprint(params)
}

type nopRecorder struct{}

func (nopRecorder) EventReceived(string) {}
func (nopRecorder) InputRejected(string) {}
func (nopRecorder) FlowCompleted(string) {}
func (nopRecorder) OrderConfirmed()      {}
func (nopRecorder) BalanceRefused()      {}
func (nopRecorder) TopUpCredited()       {}

type testEnv struct {
	engine   *Engine
	states   *states.Manager
	users    *fakeUsers
	orders   *fakeOrders
	payments *fakePayments
	tickets  *fakeTickets
	notifier *fakeNotifier
	started  time.Time
}

var testLimits = Limits{
	MinQuantity:          100,
	MaxQuantity:          100000,
	MinAmount:            100,
	MaxAmount:            50000,
	CardFeePercent:       decimal.NewFromInt(3),
	NetbankingFeePercent: decimal.RequireFromString("2.5"),
	ProcessingDelay:      5 * time.Second,
	SupportUsername:      "panel_support",
}

func newTestEnv() *testEnv {
	u := newFakeUsers()
	env := &testEnv{
		states:   states.NewManager(),
		users:    u,
		orders:   newFakeOrders(u),
		payments: newFakePayments(u),
		tickets:  &fakeTickets{},
		notifier: &fakeNotifier{},
		started:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	env.engine = NewEngine(
		env.states,
		env.users,
		env.orders,
		env.payments,
		env.tickets,
		catalog.New(),
		fakeScreens{},
		env.notifier,
		keyLocalizer{},
		nopRecorder{},
		NewPresence(env.started),
		testLimits,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	env.engine.now = func() time.Time { return env.started.Add(time.Hour) }
	return env
}

func (env *testEnv) text(userID int64, payload string) Result {
	return env.engine.Handle(context.Background(), Event{
		UserID: userID, ChatID: userID, Channel: ChannelText, Payload: payload,
		FirstName: "Rahul", SentAt: env.started.Add(time.Minute),
	})
}

func (env *testEnv) command(userID int64, name string) Result {
	return env.engine.Handle(context.Background(), Event{
		UserID: userID, ChatID: userID, Channel: ChannelCommand, Payload: name,
		FirstName: "Rahul", SentAt: env.started.Add(time.Minute),
	})
}

func (env *testEnv) press(userID int64, data string) Result {
	return env.engine.Handle(context.Background(), Event{
		UserID: userID, ChatID: userID, Channel: ChannelCallback, Payload: data,
		FirstName: "Rahul",
	})
}

func (env *testEnv) contact(userID, ownerID int64, phone string) Result {
	return env.engine.Handle(context.Background(), Event{
		UserID: userID, ChatID: userID, Channel: ChannelContact,
		Contact:   &Contact{PhoneNumber: phone, UserID: ownerID},
		FirstName: "Rahul", SentAt: env.started.Add(time.Minute),
	})
}

func (env *testEnv) conversation(userID int64) states.Conversation {
	conv, _ := env.states.Get(context.Background(), userID)
	return conv
}

func (env *testEnv) setConversation(userID int64, conv states.Conversation) {
	_ = env.states.Set(context.Background(), userID, conv)
}
