package cmds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/tickets"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/flows"
)

// keyLocalizer renders "key{param=value,...}" so tests can assert on keys.
type keyLocalizer struct{}

func (keyLocalizer) Get(_, key string, params map[string]interface{}) string {
	if len(params) == 0 {
		return key
	}
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return key + "{" + strings.Join(parts, ",") + "}"
}

type fakeOrders struct {
	list  []*orders.Order
	err   error
	limit int
}

func (f *fakeOrders) History(_ context.Context, _ int64, limit int) ([]*orders.Order, error) {
	f.limit = limit
	return f.list, f.err
}

type fakeTickets struct {
	list []*tickets.Ticket
	err  error
}

func (f *fakeTickets) List(context.Context, int64, int) ([]*tickets.Ticket, error) {
	return f.list, f.err
}

func profile() *users.Profile {
	return &users.Profile{
		TelegramID:     42,
		FullName:       "Asha Rao",
		Balance:        decimal.RequireFromString("250"),
		TotalSpent:     decimal.RequireFromString("10.5"),
		AccountCreated: true,
		CreatedAt:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func hasButton(reply flows.Reply, data string) bool {
	for _, row := range reply.Buttons {
		for _, b := range row {
			if b.Data == data {
				return true
			}
		}
	}
	return false
}

func TestMainMenu(t *testing.T) {
	s := NewScreens(&fakeOrders{}, &fakeTickets{}, keyLocalizer{})
	reply := s.MainMenu("en", profile())

	if !strings.Contains(reply.Text, "balance=250.00") {
		t.Errorf("text = %q, want formatted balance", reply.Text)
	}
	for _, data := range []string{
		flows.CallbackNewOrder, flows.CallbackAddFunds, flows.CallbackMyAccount,
		flows.CallbackOrderHistory, flows.CallbackCreateTicket, flows.CallbackViewTickets,
		flows.CallbackEditProfile, flows.CallbackLanguage, flows.CallbackSupport,
	} {
		if !hasButton(reply, data) {
			t.Errorf("main menu lacks %q", data)
		}
	}
}

func TestOrderHistory(t *testing.T) {
	order := &orders.Order{
		OrderID:   "ORD1",
		Platform:  "Instagram",
		Service:   "Followers",
		Quantity:  1000,
		Price:     decimal.RequireFromString("500"),
		Status:    orders.StatusProcessing,
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name     string
		orders   *fakeOrders
		wantText string
		wantErr  bool
	}{
		{name: "empty", orders: &fakeOrders{}, wantText: "orders.history_empty"},
		{name: "listed", orders: &fakeOrders{list: []*orders.Order{order}}, wantText: "order_id=ORD1"},
		{name: "storage error", orders: &fakeOrders{err: errors.New("db down")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreens(tt.orders, &fakeTickets{}, keyLocalizer{})
			reply, err := s.OrderHistory(context.Background(), "en", profile())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.Contains(reply.Text, tt.wantText) {
				t.Errorf("text = %q, want %q", reply.Text, tt.wantText)
			}
			if tt.orders.limit != listLimit {
				t.Errorf("limit = %d, want %d", tt.orders.limit, listLimit)
			}
			if !hasButton(reply, flows.CallbackMainMenu) {
				t.Error("history lacks the main menu button")
			}
		})
	}
}

func TestTicketsCountsOpen(t *testing.T) {
	list := []*tickets.Ticket{
		{TicketID: "TKT1", Status: tickets.StatusOpen, CreatedAt: time.Now()},
		{TicketID: "TKT2", Status: tickets.StatusClosed, CreatedAt: time.Now()},
	}
	s := NewScreens(&fakeOrders{}, &fakeTickets{list: list}, keyLocalizer{})

	reply, err := s.Tickets(context.Background(), "en", profile())
	if err != nil {
		t.Fatalf("Tickets() error = %v", err)
	}
	if !strings.Contains(reply.Text, "open=1") || !strings.Contains(reply.Text, "count=2") {
		t.Errorf("text = %q", reply.Text)
	}
}

func TestAccountAndBalance(t *testing.T) {
	s := NewScreens(&fakeOrders{}, &fakeTickets{}, keyLocalizer{})

	account, err := s.Account(context.Background(), "en", profile())
	if err != nil {
		t.Fatalf("Account() error = %v", err)
	}
	if !strings.Contains(account.Text, "since=02 Jan 2026") || !hasButton(account, flows.CallbackEditProfile) {
		t.Errorf("account = %+v", account)
	}

	balance := s.Balance("en", profile())
	if !strings.Contains(balance.Text, "spent=10.50") || !hasButton(balance, flows.CallbackAddFunds) {
		t.Errorf("balance = %+v", balance)
	}
}
