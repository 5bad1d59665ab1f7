package telegram

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smmpanel-bot/internal/telegram/flows"
	"smmpanel-bot/internal/telegram/messages"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type engine interface {
	Handle(ctx context.Context, ev flows.Event) flows.Result
}

// Router turns Telegram updates into engine events and delivers the replies.
type Router struct {
	bot    botAPI
	engine engine
	logger *slog.Logger

	// delayed replies still being delivered
	pending sync.WaitGroup
}

func NewRouter(bot botAPI, engine engine, logger *slog.Logger) *Router {
	return &Router{
		bot:    bot,
		engine: engine,
		logger: logger.With("component", "router"),
	}
}

func (r *Router) Route(ctx context.Context, update *tgbotapi.Update) error {
	ev, ok := toEvent(update)
	if !ok {
		return nil
	}

	// the spinner on a pressed button stops only once the query is answered
	if update.CallbackQuery != nil {
		if _, err := r.bot.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			r.logger.Warn("Failed to answer callback", "user_id", ev.UserID, slog.Any("error", err))
		}
	}

	res := r.handle(ctx, ev)
	if res.Empty() {
		return nil
	}

	editID := 0
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		editID = update.CallbackQuery.Message.MessageID
	}

	for i, reply := range res.Replies {
		if reply.Delay > 0 {
			r.pending.Add(1)
			go func() {
				defer r.pending.Done()
				r.sendLater(ev.ChatID, res.Replies[i:])
			}()
			return nil
		}

		if i == 0 && editID != 0 && editable(reply) {
			if err := r.edit(ev.ChatID, editID, reply); err == nil {
				continue
			}
		}
		if err := r.send(ev.ChatID, reply); err != nil {
			return err
		}
	}

	return nil
}

// handle shields the update loop from panics in the engine.
func (r *Router) handle(ctx context.Context, ev flows.Event) (res flows.Result) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic while handling event", "user_id", ev.UserID, "panic", p)
			res = flows.Say(flows.Reply{Text: messages.Error})
		}
	}()
	return r.engine.Handle(ctx, ev)
}

// sendLater delivers replies in order, waiting out each one's delay. A
// finished flow always gets its closing message, even during shutdown.
func (r *Router) sendLater(chatID int64, replies []flows.Reply) {
	for _, reply := range replies {
		if reply.Delay > 0 {
			time.Sleep(reply.Delay)
		}
		if err := r.send(chatID, reply); err != nil {
			r.logger.Error("Failed to send delayed reply", "chat_id", chatID, slog.Any("error", err))
			return
		}
	}
}

// Wait blocks until every delayed reply has been sent. Route must not be
// called concurrently with Wait.
func (r *Router) Wait() {
	r.pending.Wait()
}

func (r *Router) send(chatID int64, reply flows.Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if markup := replyMarkup(reply); markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := r.bot.Send(msg)
	return err
}

func (r *Router) edit(chatID int64, messageID int, reply flows.Reply) error {
	var msg tgbotapi.EditMessageTextConfig
	if len(reply.Buttons) > 0 {
		msg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, reply.Text, inlineKeyboard(reply.Buttons))
	} else {
		msg = tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	}
	_, err := r.bot.Send(msg)
	return err
}

// editable reports whether reply can replace the message a button was on.
// Reply keyboards can only be attached to new messages.
func editable(reply flows.Reply) bool {
	return reply.ContactButton == "" && !reply.RemoveKeyboard
}

func replyMarkup(reply flows.Reply) any {
	switch {
	case len(reply.Buttons) > 0:
		return inlineKeyboard(reply.Buttons)
	case reply.ContactButton != "":
		keyboard := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(reply.ContactButton)),
		)
		keyboard.OneTimeKeyboard = true
		keyboard.ResizeKeyboard = true
		return keyboard
	case reply.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(true)
	}
	return nil
}

func inlineKeyboard(rows [][]flows.Button) tgbotapi.InlineKeyboardMarkup {
	out := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		out = append(out, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(out...)
}

func toEvent(update *tgbotapi.Update) (flows.Event, bool) {
	if q := update.CallbackQuery; q != nil {
		if q.From == nil {
			return flows.Event{}, false
		}
		ev := flows.Event{
			UserID:    q.From.ID,
			ChatID:    q.From.ID,
			Channel:   flows.ChannelCallback,
			Payload:   q.Data,
			Username:  q.From.UserName,
			FirstName: q.From.FirstName,
		}
		// a button is as old as the message it is attached to
		if q.Message != nil {
			if q.Message.Date != 0 {
				ev.SentAt = q.Message.Time()
			}
			if q.Message.Chat != nil {
				ev.ChatID = q.Message.Chat.ID
			}
		}
		return ev, true
	}

	m := update.Message
	if m == nil || m.From == nil || m.Chat == nil {
		return flows.Event{}, false
	}

	ev := flows.Event{
		UserID:    m.From.ID,
		ChatID:    m.Chat.ID,
		Username:  m.From.UserName,
		FirstName: m.From.FirstName,
		SentAt:    m.Time(),
	}

	switch {
	case m.IsCommand():
		ev.Channel = flows.ChannelCommand
		ev.Payload = m.Command()
		ev.Args = m.CommandArguments()
	case m.Contact != nil:
		ev.Channel = flows.ChannelContact
		ev.Contact = &flows.Contact{PhoneNumber: m.Contact.PhoneNumber, UserID: m.Contact.UserID}
	case len(m.Photo) > 0:
		// sizes are ordered smallest first
		ev.Channel = flows.ChannelPhoto
		ev.Payload = m.Photo[len(m.Photo)-1].FileID
	default:
		ev.Channel = flows.ChannelText
		ev.Payload = m.Text
	}

	return ev, true
}

func (r *Router) SetupBotCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: flows.CommandStart, Description: messages.CommandStart},
		{Command: flows.CommandMenu, Description: messages.CommandMenu},
		{Command: flows.CommandBalance, Description: messages.CommandBalance},
		{Command: flows.CommandCancel, Description: messages.CommandCancel},
		{Command: flows.CommandHelp, Description: messages.CommandHelp},
	}

	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}
