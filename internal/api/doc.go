// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package api serves Sentinel's operational HTTP endpoints with the Chi router.

# Endpoints

	GET /health/live   200 while the process runs
	GET /health/ready  200 once the engine is serving, 503 before start
	                   and during shutdown; includes store sizes
	GET /metrics       Prometheus exposition

The engine itself is an in-process library; there is no fingerprint or
login API on the wire.

# Middleware

Every request gets an X-Request-ID and a request-scoped zerolog logger,
panics are recovered, and status and latency are recorded by route pattern.
Health endpoints are rate limited per client IP with go-chi/httprate.
*/
package api
