package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smmpanel-bot/internal/telegram/flows"
	"smmpanel-bot/internal/telegram/messages"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	failEdit bool
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := c.(tgbotapi.EditMessageTextConfig); ok && f.failEdit {
		return tgbotapi.Message{}, errors.New("message is not modified")
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) messages() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), f.sent...)
}

type fakeEngine struct {
	events []flows.Event
	result flows.Result
	panics bool
}

func (f *fakeEngine) Handle(_ context.Context, ev flows.Event) flows.Result {
	f.events = append(f.events, ev)
	if f.panics {
		panic("boom")
	}
	return f.result
}

func newTestRouter(result flows.Result) (*Router, *fakeBot, *fakeEngine) {
	bot := &fakeBot{}
	eng := &fakeEngine{result: result}
	return NewRouter(bot, eng, slog.New(slog.NewTextHandler(io.Discard, nil))), bot, eng
}

func textMessage(text string) *tgbotapi.Update {
	return &tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 10,
		From:      &tgbotapi.User{ID: 7, FirstName: "Rahul", UserName: "rahul"},
		Chat:      &tgbotapi.Chat{ID: 70},
		Date:      1748779200,
		Text:      text,
	}}
}

func TestToEvent(t *testing.T) {
	command := textMessage("/start ref123")
	command.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}

	contact := textMessage("")
	contact.Message.Contact = &tgbotapi.Contact{PhoneNumber: "919876543210", UserID: 7}

	photo := textMessage("")
	photo.Message.Photo = []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}

	callback := &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 7},
		Data:    "new_order",
		Message: &tgbotapi.Message{MessageID: 3, Date: 1748775600, Chat: &tgbotapi.Chat{ID: 70}},
	}}

	tests := []struct {
		name    string
		update  *tgbotapi.Update
		channel flows.Channel
		payload string
	}{
		{name: "text", update: textMessage("hello"), channel: flows.ChannelText, payload: "hello"},
		{name: "command", update: command, channel: flows.ChannelCommand, payload: "start"},
		{name: "contact", update: contact, channel: flows.ChannelContact},
		{name: "photo takes the largest size", update: photo, channel: flows.ChannelPhoto, payload: "large"},
		{name: "callback", update: callback, channel: flows.ChannelCallback, payload: "new_order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := toEvent(tt.update)
			if !ok {
				t.Fatal("update ignored")
			}
			if ev.Channel != tt.channel || ev.Payload != tt.payload {
				t.Errorf("got %s %q, want %s %q", ev.Channel, ev.Payload, tt.channel, tt.payload)
			}
			if ev.UserID != 7 || ev.ChatID != 70 {
				t.Errorf("user %d chat %d", ev.UserID, ev.ChatID)
			}
		})
	}

	ev, _ := toEvent(command)
	if ev.Args != "ref123" {
		t.Errorf("args = %q", ev.Args)
	}
	if !ev.SentAt.Equal(time.Unix(1748779200, 0)) {
		t.Errorf("sent at = %v", ev.SentAt)
	}

	ev, _ = toEvent(contact)
	if ev.Contact == nil || ev.Contact.PhoneNumber != "919876543210" || ev.Contact.UserID != 7 {
		t.Errorf("contact = %+v", ev.Contact)
	}

	ev, _ = toEvent(callback)
	if !ev.SentAt.Equal(time.Unix(1748775600, 0)) {
		t.Errorf("callback sent at = %v, want the date of its message", ev.SentAt)
	}

	callback.CallbackQuery.Message.Date = 0
	ev, _ = toEvent(callback)
	if !ev.SentAt.IsZero() {
		t.Errorf("undated message gave sent at %v", ev.SentAt)
	}

	if _, ok := toEvent(&tgbotapi.Update{}); ok {
		t.Error("empty update accepted")
	}
}

func TestRouteRendersReplies(t *testing.T) {
	r, bot, _ := newTestRouter(flows.Say(
		flows.Reply{Text: "pick", Buttons: [][]flows.Button{{{Text: "Pay", URL: "https://pay.example"}, {Text: "Menu", Data: "main_menu"}}}},
		flows.Reply{Text: "share", ContactButton: "Send my contact"},
		flows.Reply{Text: "bye", RemoveKeyboard: true},
	))

	if err := r.Route(context.Background(), textMessage("hi")); err != nil {
		t.Fatalf("Route: %v", err)
	}

	sent := bot.messages()
	if len(sent) != 3 {
		t.Fatalf("sent %d messages, want 3", len(sent))
	}

	inline, ok := sent[0].(tgbotapi.MessageConfig).ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("first markup = %T", sent[0].(tgbotapi.MessageConfig).ReplyMarkup)
	}
	row := inline.InlineKeyboard[0]
	if row[0].URL == nil || *row[0].URL != "https://pay.example" || row[1].CallbackData == nil || *row[1].CallbackData != "main_menu" {
		t.Errorf("inline row = %+v", row)
	}

	keyboard, ok := sent[1].(tgbotapi.MessageConfig).ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok || !keyboard.Keyboard[0][0].RequestContact || !keyboard.OneTimeKeyboard {
		t.Errorf("contact markup = %+v", sent[1].(tgbotapi.MessageConfig).ReplyMarkup)
	}

	if _, ok := sent[2].(tgbotapi.MessageConfig).ReplyMarkup.(tgbotapi.ReplyKeyboardRemove); !ok {
		t.Errorf("last markup = %T", sent[2].(tgbotapi.MessageConfig).ReplyMarkup)
	}
}

func TestRouteCallbackEditsMessage(t *testing.T) {
	update := &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 7},
		Data:    "balance",
		Message: &tgbotapi.Message{MessageID: 3, Chat: &tgbotapi.Chat{ID: 70}},
	}}

	t.Run("edit", func(t *testing.T) {
		r, bot, _ := newTestRouter(flows.Say(flows.Reply{Text: "balance"}, flows.Reply{Text: "more"}))
		if err := r.Route(context.Background(), update); err != nil {
			t.Fatalf("Route: %v", err)
		}

		if len(bot.requests) != 1 {
			t.Errorf("callback answers = %d", len(bot.requests))
		}
		sent := bot.messages()
		if _, ok := sent[0].(tgbotapi.EditMessageTextConfig); !ok || len(sent) != 2 {
			t.Errorf("sent = %#v", sent)
		}
		if _, ok := sent[1].(tgbotapi.MessageConfig); !ok {
			t.Errorf("second reply = %T, want a new message", sent[1])
		}
	})

	t.Run("falls back to send", func(t *testing.T) {
		r, bot, _ := newTestRouter(flows.Say(flows.Reply{Text: "balance"}))
		bot.failEdit = true
		if err := r.Route(context.Background(), update); err != nil {
			t.Fatalf("Route: %v", err)
		}
		if sent := bot.messages(); len(sent) != 1 {
			t.Errorf("sent = %d", len(sent))
		}
	})
}

func TestRouteDelayedReplies(t *testing.T) {
	r, bot, _ := newTestRouter(flows.Say(
		flows.Reply{Text: "processing"},
		flows.Reply{Text: "done", Delay: 10 * time.Millisecond},
	))

	if err := r.Route(context.Background(), textMessage("rahul@gmail.com")); err != nil {
		t.Fatalf("Route: %v", err)
	}
	if sent := bot.messages(); len(sent) != 1 {
		t.Fatalf("sent %d before the delay, want 1", len(sent))
	}

	r.Wait()
	sent := bot.messages()
	if len(sent) != 2 || sent[1].(tgbotapi.MessageConfig).Text != "done" {
		t.Errorf("sent = %#v", sent)
	}
}

func TestRouteDelayedRepliesSurviveShutdown(t *testing.T) {
	r, bot, _ := newTestRouter(flows.Say(
		flows.Reply{Text: "processing"},
		flows.Reply{Text: "done", Delay: 10 * time.Millisecond},
	))

	ctx, cancel := context.WithCancel(context.Background())
	if err := r.Route(ctx, textMessage("rahul@gmail.com")); err != nil {
		t.Fatalf("Route: %v", err)
	}
	cancel()
	r.Wait()

	if sent := bot.messages(); len(sent) != 2 {
		t.Errorf("sent %d messages after Wait, want 2", len(sent))
	}
}

func TestRouteRecoversPanic(t *testing.T) {
	r, bot, eng := newTestRouter(flows.Result{})
	eng.panics = true

	if err := r.Route(context.Background(), textMessage("hi")); err != nil {
		t.Fatalf("Route: %v", err)
	}
	sent := bot.messages()
	if len(sent) != 1 || sent[0].(tgbotapi.MessageConfig).Text != messages.Error {
		t.Errorf("sent = %#v", sent)
	}
}

func TestRouteSilentResult(t *testing.T) {
	r, bot, eng := newTestRouter(flows.Result{})
	if err := r.Route(context.Background(), textMessage("old")); err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(eng.events) != 1 || len(bot.messages()) != 0 {
		t.Errorf("events %d, sent %d", len(eng.events), len(bot.messages()))
	}
}
