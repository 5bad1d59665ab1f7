package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	environment "smmpanel-bot/internal/env"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, err := environment.Setup(ctx)
	if err != nil {
		log.Fatalf("Failed to setup environment: %v", err)
	}

	logger := env.Logger
	logger.Info("Starting smmpanel-bot", slog.String("env", env.Config.Env))

	if env.Servers.HTTP.Observability != nil {
		go func() {
			logger.Info("Starting observability server", slog.String("addr", env.Servers.HTTP.Observability.Addr))
			if err := env.Servers.HTTP.Observability.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Observability server error", slog.Any("error", err))
			}
		}()
	}

	loopDone, err := startTelegramBot(ctx, env)
	if err != nil {
		logger.Error("Failed to start telegram bot", slog.Any("error", err))
		return
	}

	env.Services.Notifier.NotifyAdmins(ctx, env.Services.Localization.Get("en", "admin.bot_online", map[string]interface{}{
		"time": time.Now().Format(time.RFC1123),
	}))

	if err := env.Services.WorkerManager.Start(); err != nil {
		logger.Error("Failed to start workers", slog.Any("error", err))
		return
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Bot started. Press Ctrl+C to stop.")
	<-quit

	logger.Info("Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), env.Config.ShutdownDuration)
	defer stop()

	env.Services.WorkerManager.Stop()
	cancel()
	<-loopDone

	// the webhook queues notifications too
	if env.Servers.HTTP.Observability != nil {
		if err := env.Servers.HTTP.Observability.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Observability server shutdown error", slog.Any("error", err))
		}
	}

	// nothing routes any more; flush what the last updates queued
	env.Services.TelegramRouter.Wait()
	env.Services.Notifier.Wait()
	env.Clients.TelegramBot.Stop()

	for _, closer := range env.Closers {
		closer()
	}

	logger.Info("Application stopped")
}

// startTelegramBot runs the update loop until ctx is done. The returned
// channel is closed once the loop has finished its last update.
func startTelegramBot(ctx context.Context, env *environment.Env) (<-chan struct{}, error) {
	logger := env.Logger

	// the client outlives the loop so queued replies can still go out
	if err := env.Clients.TelegramBot.Start(context.WithoutCancel(ctx)); err != nil {
		return nil, fmt.Errorf("start telegram client: %w", err)
	}

	if err := env.Services.TelegramRouter.SetupBotCommands(); err != nil {
		// the menu is cosmetic
		logger.Warn("Failed to setup bot commands", slog.Any("error", err))
	}

	updates := env.Clients.TelegramBot.GetUpdates()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if err := env.Services.TelegramRouter.Route(ctx, &update); err != nil {
					logger.Error("Failed to route update", slog.Int("update_id", update.UpdateID), slog.Any("error", err))
				}
			}
		}
	}()

	logger.Info("Listening for updates")
	return done, nil
}
