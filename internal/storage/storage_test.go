package storage

import (
	"context"
	"errors"
	"testing"

	"smmpanel-bot/internal/infra/sqlite3"
	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/payment"
	"smmpanel-bot/internal/stories/tickets"
	"smmpanel-bot/internal/stories/users"

	"github.com/shopspring/decimal"
)

func newTestStorage(t *testing.T) *storageImpl {
	t.Helper()

	db, err := sqlite3.New(context.Background(),
		sqlite3.WithDSN(":memory:"),
		sqlite3.WithMaxOpenConns(1),
		sqlite3.WithMaxIdleConns(1),
		sqlite3.WithMigrations(),
	)
	if err != nil {
		t.Fatalf("sqlite3.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return New(db)
}

func createUser(t *testing.T, s *storageImpl, telegramID int64, code string) *users.Profile {
	t.Helper()

	p, err := s.CreateUser(context.Background(), users.Profile{
		TelegramID:   telegramID,
		FirstName:    "Rahul",
		ReferralCode: code,
		APIKey:       "ISP-" + code,
		Language:     "en",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return p
}

func creditUser(t *testing.T, s *storageImpl, telegramID int64, amount string) {
	t.Helper()
	ctx := context.Background()

	p, err := s.CreatePayment(ctx, payment.Payment{
		UserID: telegramID,
		Amount: decimal.RequireFromString(amount),
		Status: payment.StatusApproved,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if ok, _, err := s.CreditPayment(ctx, p.ID); err != nil || !ok {
		t.Fatalf("CreditPayment = %v, %v", ok, err)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStorage(t)
	createUser(t, s, 1, "ISPAAAAAA")

	_, err := s.CreateUser(context.Background(), users.Profile{
		TelegramID:   2,
		ReferralCode: "ISPAAAAAA",
		APIKey:       "ISP-other",
	})
	if !errors.Is(err, users.ErrDuplicate) {
		t.Fatalf("CreateUser with taken referral code: err = %v, want ErrDuplicate", err)
	}
}

func TestCompleteAccount(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created := createUser(t, s, 10, "ISPBBBBBB")

	if created.AccountCreated {
		t.Fatal("new user must not have an account")
	}
	if !created.Balance.IsZero() {
		t.Fatalf("new balance = %s, want 0", created.Balance)
	}

	p, err := s.CompleteAccount(ctx, 10, users.AccountDetails{
		FullName:    "Rahul",
		PhoneNumber: "+919876543210",
		Email:       "rahul@gmail.com",
	})
	if err != nil {
		t.Fatalf("CompleteAccount: %v", err)
	}
	if !p.AccountCreated || p.FullName != "Rahul" || p.PhoneNumber != "+919876543210" || p.Email != "rahul@gmail.com" {
		t.Fatalf("unexpected profile after completion: %+v", p)
	}

	phone := "+919876543210"
	byPhone, err := s.GetUser(ctx, users.GetCriteria{PhoneNumber: &phone})
	if err != nil || byPhone == nil || byPhone.TelegramID != 10 {
		t.Fatalf("GetUser by phone = %+v, %v", byPhone, err)
	}

	if _, err := s.CompleteAccount(ctx, 999, users.AccountDetails{FullName: "x", PhoneNumber: "y", Email: "z"}); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("CompleteAccount unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestConfirmPendingOrder(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	createUser(t, s, 20, "ISPCCCCCC")

	pending := orders.PendingOrder{
		UserID:   20,
		Platform: "instagram",
		Service:  "followers",
		Quality:  "medium",
		Link:     "https://instagram.com/foo",
		Quantity: 1000,
		Price:    decimal.RequireFromString("500"),
	}
	if _, err := s.SavePendingOrder(ctx, pending); err != nil {
		t.Fatalf("SavePendingOrder: %v", err)
	}

	t.Run("insufficient balance changes nothing", func(t *testing.T) {
		creditUser(t, s, 20, "120.50")

		_, err := s.ConfirmPendingOrder(ctx, 20, "ORD1")
		var insufficient *orders.InsufficientBalanceError
		if !errors.As(err, &insufficient) {
			t.Fatalf("err = %v, want InsufficientBalanceError", err)
		}
		if got := insufficient.Shortfall().StringFixed(2); got != "379.50" {
			t.Errorf("shortfall = %s, want 379.50", got)
		}

		still, err := s.GetPendingOrder(ctx, 20)
		if err != nil || still == nil {
			t.Fatalf("pending order must survive: %+v, %v", still, err)
		}
		list, _ := s.ListOrders(ctx, orders.ListCriteria{})
		if len(list) != 0 {
			t.Fatalf("orders created on insufficient balance: %d", len(list))
		}
	})

	t.Run("sufficient balance debits exactly the price", func(t *testing.T) {
		creditUser(t, s, 20, "400")

		res, err := s.ConfirmPendingOrder(ctx, 20, "ORD2")
		if err != nil {
			t.Fatalf("ConfirmPendingOrder: %v", err)
		}
		if res.Order.Status != orders.StatusProcessing || res.Order.Remains != 1000 {
			t.Errorf("unexpected order: %+v", res.Order)
		}
		if got := res.Balance.StringFixed(2); got != "20.50" {
			t.Errorf("balance after = %s, want 20.50", got)
		}

		id := int64(20)
		p, _ := s.GetUser(ctx, users.GetCriteria{TelegramID: &id})
		if p.OrdersCount != 1 || p.TotalSpent.StringFixed(2) != "500.00" || p.Balance.StringFixed(2) != "20.50" {
			t.Errorf("unexpected wallet: count=%d spent=%s balance=%s", p.OrdersCount, p.TotalSpent, p.Balance)
		}

		gone, err := s.GetPendingOrder(ctx, 20)
		if err != nil || gone != nil {
			t.Fatalf("pending order must be deleted: %+v, %v", gone, err)
		}
	})

	t.Run("no pending order", func(t *testing.T) {
		_, err := s.ConfirmPendingOrder(ctx, 20, "ORD3")
		if !errors.Is(err, orders.ErrPendingOrderNotFound) {
			t.Fatalf("err = %v, want ErrPendingOrderNotFound", err)
		}
	})
}

func TestCreditPaymentOnce(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	createUser(t, s, 30, "ISPDDDDDD")

	p, err := s.CreatePayment(ctx, payment.Payment{
		UserID: 30,
		Amount: decimal.NewFromInt(1000),
		Status: payment.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	if ok, _, err := s.CreditPayment(ctx, p.ID); err != nil || ok {
		t.Fatalf("pending payment credited: %v, %v", ok, err)
	}

	approved := payment.StatusApproved
	if _, err := s.UpdatePayment(ctx, payment.GetCriteria{ID: &p.ID}, payment.UpdateParams{Status: &approved}); err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}

	ok, balance, err := s.CreditPayment(ctx, p.ID)
	if err != nil || !ok || balance.StringFixed(2) != "1000.00" {
		t.Fatalf("first credit = %v, %s, %v", ok, balance, err)
	}

	ok, balance, err = s.CreditPayment(ctx, p.ID)
	if err != nil || ok || balance.StringFixed(2) != "1000.00" {
		t.Fatalf("second credit = %v, %s, %v", ok, balance, err)
	}
}

func TestTicketsListNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	createUser(t, s, 40, "ISPEEEEEE")

	for _, id := range []string{"TKT1", "TKT2"} {
		if _, err := s.CreateTicket(ctx, tickets.Ticket{
			TicketID:    id,
			UserID:      40,
			Subject:     "Refill",
			Description: "Followers dropped after a day",
			Status:      tickets.StatusOpen,
		}); err != nil {
			t.Fatalf("CreateTicket: %v", err)
		}
	}

	_, err := s.CreateTicket(ctx, tickets.Ticket{TicketID: "TKT1", UserID: 40, Subject: "x", Description: "y", Status: tickets.StatusOpen})
	if !errors.Is(err, tickets.ErrDuplicateTicketID) {
		t.Fatalf("duplicate ticket id: err = %v", err)
	}

	uid := int64(40)
	list, err := s.ListTickets(ctx, tickets.ListCriteria{UserID: &uid, Limit: 10})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(list) != 2 || list[0].TicketID != "TKT2" {
		t.Fatalf("unexpected tickets order: %+v", list)
	}
}
