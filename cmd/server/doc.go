// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

// Command server runs Sentinel: the fingerprinting and login anomaly engine,
// its retention sweeps, and the operational HTTP endpoints.
//
// # Startup
//
//  1. Load configuration (defaults, YAML file, environment) and validate it
//  2. Initialize zerolog and publish build info
//  3. Warn when FINGERPRINT_SALT is unset
//  4. Build the engine
//  5. Start the supervisor tree: maintenance (core layer) and HTTP (api layer)
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the tree. Readiness flips to 503 first, then
// the HTTP server drains within server.shutdown_timeout. The process exits
// non-zero if a service failed to stop in time.
//
// # Endpoints
//
//	GET /health/live
//	GET /health/ready
//	GET /metrics
package main
