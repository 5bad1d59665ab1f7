package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Bot API allows about 30 messages per second across all chats.
const messagesPerSecond = 30

type Client struct {
	api     *tgbotapi.BotAPI
	logger  *slog.Logger
	limiter *rate.Limiter
	updates tgbotapi.UpdatesChannel
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewClient(token string, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		api:     bot,
		logger:  logger.With("component", "telegram"),
		limiter: rate.NewLimiter(messagesPerSecond, 1),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start begins long polling.
func (c *Client) Start(ctx context.Context) error {
	c.cancel()
	c.ctx, c.cancel = context.WithCancel(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	c.updates = c.api.GetUpdatesChan(u)

	c.logger.Info("Telegram polling started", slog.String("bot", c.api.Self.UserName))
	return nil
}

func (c *Client) Stop() {
	c.cancel()
	c.api.StopReceivingUpdates()
	c.logger.Info("Telegram polling stopped")
}

func (c *Client) GetUpdates() tgbotapi.UpdatesChannel {
	return c.updates
}

// SendMessage sends plain text, used by workers and notifications.
func (c *Client) SendMessage(chatID int64, text string) error {
	_, err := c.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// Send sends any chattable through the rate limiter.
func (c *Client) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("rate limiting: %w", err)
	}

	message, err := c.api.Send(chattable)
	if err != nil {
		c.logger.Error("Send failed", slog.Any("error", err))
		return tgbotapi.Message{}, fmt.Errorf("send: %w", err)
	}

	return message, nil
}

// Request is used for calls without a message result (callback answers, commands).
func (c *Client) Request(chattable tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return nil, fmt.Errorf("rate limiting: %w", err)
	}

	resp, err := c.api.Request(chattable)
	if err != nil {
		c.logger.Error("API request failed", slog.Any("error", err))
		return nil, fmt.Errorf("request: %w", err)
	}

	return resp, nil
}

func (c *Client) GetBotAPI() *tgbotapi.BotAPI {
	return c.api
}
