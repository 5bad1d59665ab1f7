package environment

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smmpanel-bot/internal/config"
	"smmpanel-bot/internal/infra/yookassa"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func initObservability(
	_ context.Context,
	logger *slog.Logger,
	clients *Clients,
	services *Services,
	cfg config.Config,
) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Mount("/debug", middleware.Profiler())
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/livez", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "OK")
	})

	deps := map[string]pinger{"sqlite": clients.SQLiteDB}
	if clients.Redis != nil {
		deps["redis"] = clients.Redis
	}
	r.Get("/readyz", readiness(logger, deps))

	r.Method(http.MethodPost, "/webhooks/yookassa", yookassa.NewWebhookHandler(services.PaymentAutoCheck, logger))

	return &http.Server{
		Handler:           r,
		Addr:              cfg.Observability.ADDR(),
		ReadTimeout:       cfg.Observability.ReadTimeout,
		WriteTimeout:      cfg.Observability.WriteTimeout,
		IdleTimeout:       cfg.Observability.IdleTimeout,
		ReadHeaderTimeout: cfg.Observability.ReadTimeout,
	}
}

// readiness pings every dependency and reports each one.
func readiness(logger *slog.Logger, deps map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		report := make(map[string]string, len(deps))
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				logger.Warn("Readiness check failed", "dependency", name, slog.Any("error", err))
				report[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "ok"
		}

		render.Status(r, status)
		render.JSON(w, r, report)
	}
}
