// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/metrics"
)

// RateLimitConfig holds rate limit parameters for an endpoint group.
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed in the window.
	Requests int

	// Window is the time window for rate limiting.
	Window time.Duration
}

// RateLimitHealth allows frequent probes while capping abuse.
var RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}

// rateLimitByIP returns an httprate limiter keyed by client IP. A
// non-positive request count disables limiting.
func rateLimitByIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
		}),
	)
}

// requestLogger stores a zerolog logger tagged with chi's request ID in
// the request context. It must run after chimiddleware.RequestID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.With().
			Str("component", "api").
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Logger()
		next.ServeHTTP(w, r.WithContext(logging.ContextWithLogger(r.Context(), logger)))
	})
}

func requestID(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}

// prometheusMetrics records status and latency per route pattern, so
// label cardinality stays bounded for unmatched paths.
func prometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(r.Method, route, status, time.Since(start))

		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
