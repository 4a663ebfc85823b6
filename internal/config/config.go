// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/sentinel/internal/fingerprint"
	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/validation"
)

// ErrInvalidTimezone is returned when detection.timezone cannot be loaded.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Config holds all application configuration.
type Config struct {
	Fingerprint FingerprintConfig `koanf:"fingerprint"`
	Behavior    BehaviorConfig    `koanf:"behavior"`
	Detection   DetectionConfig   `koanf:"detection"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// FingerprintConfig configures hashing and device comparison.
type FingerprintConfig struct {
	// Salt is mixed into every fingerprint hash.
	// Default: "default-fingerprint-salt" (insecure, override in production)
	Salt string `koanf:"salt"`

	// SameDeviceThreshold is the similarity a comparison must exceed to be
	// reported as the same device.
	// Default: 0.8
	SameDeviceThreshold float64 `koanf:"same_device_threshold" validate:"gt=0,lte=1"`
}

// BehaviorConfig sets per-user history capacities.
type BehaviorConfig struct {
	LoginHistorySize    int `koanf:"login_history_size" validate:"min=1"`
	IPHistorySize       int `koanf:"ip_history_size" validate:"min=1"`
	DeviceHistorySize   int `koanf:"device_history_size" validate:"min=1"`
	LocationHistorySize int `koanf:"location_history_size" validate:"min=1"`

	// PatternTTL evicts patterns not updated for this long during
	// maintenance. 0 keeps patterns forever.
	// Default: 0
	PatternTTL time.Duration `koanf:"pattern_ttl" validate:"gte=0"`
}

// DetectionConfig configures anomaly detection.
type DetectionConfig struct {
	// Timezone login hours are bucketed in: "UTC", "Local" or an IANA name.
	// Default: UTC
	Timezone string `koanf:"timezone" validate:"required,timezone"`

	// MinLoginHistory is the history needed before unusual-time checks run.
	// Default: 5
	MinLoginHistory int `koanf:"min_login_history" validate:"min=1"`

	// UnusualHourThreshold: an hour with a smaller share of history is unusual.
	// Default: 0.05
	UnusualHourThreshold float64 `koanf:"unusual_hour_threshold" validate:"gt=0,lt=1"`

	// RiskWindow bounds the anomalies counted toward a user's risk score.
	// Default: 24h
	RiskWindow time.Duration `koanf:"risk_window" validate:"gt=0"`
}

// MaintenanceConfig schedules retention sweeps.
type MaintenanceConfig struct {
	Enabled bool `koanf:"enabled"`

	// Interval between sweeps.
	// Default: 1h
	Interval time.Duration `koanf:"interval" validate:"gt=0"`

	// FingerprintMaxAge is the registry retention.
	// Default: 720h (30 days)
	FingerprintMaxAge time.Duration `koanf:"fingerprint_max_age" validate:"gt=0"`

	// AnomalyMaxAge is the anomaly log retention.
	// Default: 168h (7 days)
	AnomalyMaxAge time.Duration `koanf:"anomaly_max_age" validate:"gt=0"`
}

// ServerConfig configures the operational HTTP listener.
type ServerConfig struct {
	// ListenAddr serves /health and /metrics.
	// Default: :9464
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"required,loglevel"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Validate checks every section. It returns nil or a wrapped
// *validation.Error listing each failing field.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UsesDefaultSalt reports whether fingerprints are hashed with the public
// default salt.
func (c *Config) UsesDefaultSalt() bool {
	return c.Fingerprint.Salt == "" || c.Fingerprint.Salt == fingerprint.DefaultSalt
}

// Location loads detection.timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Detection.Timezone)
	if err != nil || c.Detection.Timezone == "" {
		return nil, fmt.Errorf("%w %q", ErrInvalidTimezone, c.Detection.Timezone)
	}
	return loc, nil
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	opts := logging.DefaultConfig()
	opts.Level = c.Logging.Level
	opts.Format = c.Logging.Format
	opts.Caller = c.Logging.Caller
	return opts
}
