package main

import (
	"net/http"
	"time"

	"trade-journal-go/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// NewRouter wires the API routes and middleware.
func NewRouter(h *APIHandler, metrics http.Handler, cfg config.Server, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.Health)
	r.Handle("/metrics", metrics)

	r.Route("/api", func(r chi.Router) {
		r.Use(newRateLimiter(cfg.RateLimit, cfg.RateLimitBurst, log).Handler)
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", h.ListTrades)
			r.Post("/", h.AddTrade)
			r.Delete("/", h.ClearTrades)
			r.Delete("/{id}", h.DeleteTrade)
			r.Post("/{id}/duplicate", h.DuplicateTrade)
		})

		r.Get("/statistics", h.StatisticsHandler)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/equity", h.EquityChart)
			r.Get("/period", h.PeriodChart)
			r.Get("/sides", h.SidesChart)
		})

		r.Get("/export", h.Export)
		r.Get("/export.xlsx", h.ExportXLSX)
		r.Post("/import", h.Import)
		r.Post("/import/remote", h.ImportRemote)
	})
	return r
}
