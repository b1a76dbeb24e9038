// Package http exposes the pipeline over a small REST surface: two
// upload endpoints, a health probe, a metrics endpoint and a websocket
// progress channel.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"baselinegen/internal/config"
	"baselinegen/internal/middleware"
	"baselinegen/internal/operations"
	"baselinegen/internal/websocket"
)

// Handler bundles the HTTP surface's dependencies.
type Handler struct {
	cfg    *config.Config
	runner *operations.Runner
	hub    *websocket.Hub
	logger *slog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(cfg *config.Config, runner *operations.Runner, hub *websocket.Hub, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:    cfg,
		runner: runner,
		hub:    hub,
		logger: logger.With(slog.String("component", "http")),
	}
}

// Router assembles the middleware chain and routes.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)

	if h.cfg.Security.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(h.cfg.Security.RateLimit.RPS, h.cfg.Security.RateLimit.Burst, h.logger)
		r.Use(rl.Handler)
	}

	r.Get("/api/health", h.Health)
	r.Post("/api/baseline", h.GenerateBaseline)
	r.Post("/api/reconcile", h.ReconcileForecast)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(h.hub, w, req)
	})

	return r
}
