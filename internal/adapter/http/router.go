package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/goatm/internal/adapter/http/handler"
	"github.com/iho/goatm/internal/adapter/http/middleware"
	"github.com/iho/goatm/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	TellerHandler    *handler.TellerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	r.Get("/healthz", cfg.HealthHandler.Liveness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Session-bound teller operations
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionToken)

			if cfg.IdempotencyStore != nil {
				idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idempotency.Wrap)
			}

			r.Get("/balance", cfg.TellerHandler.Balance)
			r.Get("/history", cfg.TellerHandler.History)
			r.Post("/withdraw", cfg.TellerHandler.Withdraw)
			r.Post("/deposit", cfg.TellerHandler.Deposit)
			r.Post("/transfer", cfg.TellerHandler.Transfer)
			r.Post("/pin", cfg.TellerHandler.ChangePIN)
			r.Post("/interest", cfg.TellerHandler.Interest)
			r.Post("/logout", cfg.TellerHandler.Logout)
		})
	})

	return r
}
