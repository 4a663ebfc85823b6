// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tomtom215/sentinel/internal/engine"
)

// StatusSource reports engine store sizes. Satisfied by *engine.Engine.
type StatusSource interface {
	Summary() engine.Summary
}

// Handler serves the health endpoints.
type Handler struct {
	status    StatusSource
	startTime time.Time
	ready     atomic.Bool
}

// NewHandler creates a handler that is not yet ready.
func NewHandler(status StatusSource) *Handler {
	return &Handler{
		status:    status,
		startTime: time.Now(),
	}
}

// SetReady toggles the readiness probe. Set it once services are running
// and clear it when shutdown begins.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// HealthLive reports that the process is alive.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &Response{
		Status: "success",
		Data: map[string]any{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
	})
}

// ReadyStatus is the body of the readiness probe.
type ReadyStatus struct {
	Ready  bool            `json:"ready"`
	Uptime float64         `json:"uptime"`
	Engine *engine.Summary `json:"engine,omitempty"`
}

// HealthReady reports 200 when the service accepts work, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.ready.Load() && h.status != nil

	body := ReadyStatus{
		Ready:  ready,
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if h.status != nil {
		s := h.status.Summary()
		body.Engine = &s
	}

	code, status := http.StatusOK, "ready"
	if !ready {
		code, status = http.StatusServiceUnavailable, "not_ready"
	}
	respondJSON(w, r, code, &Response{Status: status, Data: body})
}
