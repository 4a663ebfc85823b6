// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package config loads and validates Sentinel's configuration.

# Configuration Sources

Sources are layered with Koanf v2, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml,
    /etc/sentinel/config.yaml or /etc/sentinel/config.yml
 3. Environment variables with an explicit name mapping

# Environment Variables

Fingerprinting:
  - FINGERPRINT_SALT: hash salt (default: the public default salt)
  - FINGERPRINT_SAME_DEVICE_THRESHOLD: comparison threshold (default: 0.8)

Behavior history:
  - BEHAVIOR_LOGIN_HISTORY_SIZE (100), BEHAVIOR_IP_HISTORY_SIZE (20)
  - BEHAVIOR_DEVICE_HISTORY_SIZE (10), BEHAVIOR_LOCATION_HISTORY_SIZE (10)
  - BEHAVIOR_PATTERN_TTL: stale pattern eviction, 0 disables (default: 0)

Detection:
  - DETECTION_TIMEZONE: UTC, Local or an IANA zone (default: UTC)
  - DETECTION_MIN_LOGIN_HISTORY (5), DETECTION_UNUSUAL_HOUR_THRESHOLD (0.05)
  - DETECTION_RISK_WINDOW (24h)

Maintenance:
  - MAINTENANCE_ENABLED (true), MAINTENANCE_INTERVAL (1h)
  - MAINTENANCE_FINGERPRINT_MAX_AGE (720h), MAINTENANCE_ANOMALY_MAX_AGE (168h)

Server and logging:
  - LISTEN_ADDR or SERVER_LISTEN_ADDR (:9464), SERVER_SHUTDOWN_TIMEOUT (10s)
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER (false)

# Validation

Load validates the merged result with go-playground/validator struct tags
and rejects timezones that cannot be loaded. Running with the default salt
is allowed; callers should check UsesDefaultSalt and warn.

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	logging.Init(cfg.LoggingOptions())
*/
package config
