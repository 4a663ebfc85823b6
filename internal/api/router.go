// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// HealthRateLimit applies to /health/*. Zero Requests disables it.
	HealthRateLimit RateLimitConfig

	// Metrics serves /metrics. Default: promhttp.Handler().
	Metrics http.Handler
}

// DefaultRouterConfig returns the production router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		HealthRateLimit: RateLimitHealth,
		Metrics:         promhttp.Handler(),
	}
}

// NewRouter builds the operational router around h.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.Metrics == nil {
		cfg.Metrics = promhttp.Handler()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(prometheusMetrics)

	r.Route("/health", func(r chi.Router) {
		r.Use(rateLimitByIP(cfg.HealthRateLimit))
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Handle("/metrics", cfg.Metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return r
}
