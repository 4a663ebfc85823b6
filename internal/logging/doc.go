// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package logging provides centralized zerolog-based logging for Sentinel.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Msg("Server starting")
	logging.Error().Err(err).Msg("Operation failed")

	// Component loggers
	log := logging.WithComponent("registry")
	log.Debug().Int("removed", n).Msg("Fingerprints evicted")

# Security Events

SecurityLogger records verdicts (bots, suspicious devices, anomalies) with
identifiers masked: user IDs and fingerprint hashes are truncated, IPv4
addresses lose their last octet and IPv6 addresses keep only the /48 prefix.

# slog Bridge

NewSlogLogger adapts the global zerolog logger to log/slog so that
github.com/thejerf/sutureslog can report supervisor events.

# Best Practices

Always terminate log chains with .Msg() or .Send():

	logging.Info().Str("key", "value").Msg("message")  // Correct
	logging.Info().Str("key", "value")                 // WRONG - log not emitted
*/
package logging
