package environment

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"smmpanel-bot/internal/config"
	"smmpanel-bot/internal/infra/redis"
	"smmpanel-bot/internal/infra/sqlite3"
	"smmpanel-bot/internal/infra/telegram"
	"smmpanel-bot/internal/infra/yookassa"
)

type Clients struct {
	SQLiteDB    *sqlite3.DB
	TelegramBot *telegram.Client
	YooKassa    *yookassa.Client
	// nil unless conversations live in Redis
	Redis *redis.Client
}

func newClients(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Clients, error) {
	sqliteDB, err := provideSQLiteDB(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite")
	}

	c := &Clients{SQLiteDB: sqliteDB}

	c.TelegramBot, err = telegram.NewClient(cfg.Telegram.BotToken, logger)
	if err != nil {
		c.close(logger)
		return nil, errors.Wrap(err, "telegram")
	}

	c.YooKassa, err = yookassa.NewClient(cfg.YooKassa.ShopID, cfg.YooKassa.SecretKey, cfg.YooKassa.ReturnURL, cfg.YooKassa.Currency, logger)
	if err != nil {
		c.close(logger)
		return nil, errors.Wrap(err, "yookassa")
	}

	if cfg.State.UseRedis() {
		c.Redis = redis.New(redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			UseTLS:   cfg.Redis.UseTLS,
		}, logger)
		if err := c.Redis.Ping(ctx); err != nil {
			c.close(logger)
			return nil, errors.Wrap(err, "redis")
		}
	}

	return c, nil
}

func provideSQLiteDB(ctx context.Context, cfg config.Config) (*sqlite3.DB, error) {
	maxLifetime, err := time.ParseDuration(cfg.DB.MaxLifetime)
	if err != nil {
		return nil, errors.Wrapf(err, "parse DB_MAX_LIFETIME %q", cfg.DB.MaxLifetime)
	}

	return sqlite3.New(ctx,
		sqlite3.WithDSN(cfg.DB.DSN()),
		sqlite3.WithMaxOpenConns(cfg.DB.MaxOpenConns),
		sqlite3.WithMaxIdleConns(cfg.DB.MaxIdleConns),
		sqlite3.WithConnMaxLifetime(maxLifetime),
		sqlite3.WithMigrations(),
	)
}

func (c *Clients) close(logger *slog.Logger) {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close redis", slog.Any("error", err))
		}
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			logger.Error("Failed to close database", slog.Any("error", err))
		}
	}
}
