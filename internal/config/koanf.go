// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/sentinel/internal/fingerprint"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/sentinel/config.yaml",
	"/etc/sentinel/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. They are applied first,
// then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Fingerprint: FingerprintConfig{
			Salt:                fingerprint.DefaultSalt,
			SameDeviceThreshold: fingerprint.DefaultSameDeviceThreshold,
		},
		Behavior: BehaviorConfig{
			LoginHistorySize:    100,
			IPHistorySize:       20,
			DeviceHistorySize:   10,
			LocationHistorySize: 10,
			PatternTTL:          0,
		},
		Detection: DetectionConfig{
			Timezone:             "UTC",
			MinLoginHistory:      5,
			UnusualHourThreshold: 0.05,
			RiskWindow:           24 * time.Hour,
		},
		Maintenance: MaintenanceConfig{
			Enabled:           true,
			Interval:          time.Hour,
			FingerprintMaxAge: 30 * 24 * time.Hour,
			AnomalyMaxAge:     7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			ListenAddr:      ":9464",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values
//  2. Config File: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: explicit mapping, see envTransformFunc
//
// Precedence is ENV > File > Defaults. The result is validated.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"fingerprint_salt":                  "fingerprint.salt",
	"fingerprint_same_device_threshold": "fingerprint.same_device_threshold",

	"behavior_login_history_size":    "behavior.login_history_size",
	"behavior_ip_history_size":       "behavior.ip_history_size",
	"behavior_device_history_size":   "behavior.device_history_size",
	"behavior_location_history_size": "behavior.location_history_size",
	"behavior_pattern_ttl":           "behavior.pattern_ttl",

	"detection_timezone":               "detection.timezone",
	"detection_min_login_history":      "detection.min_login_history",
	"detection_unusual_hour_threshold": "detection.unusual_hour_threshold",
	"detection_risk_window":            "detection.risk_window",

	"maintenance_enabled":             "maintenance.enabled",
	"maintenance_interval":            "maintenance.interval",
	"maintenance_fingerprint_max_age": "maintenance.fingerprint_max_age",
	"maintenance_anomaly_max_age":     "maintenance.anomaly_max_age",

	"listen_addr":             "server.listen_addr",
	"server_listen_addr":      "server.listen_addr",
	"server_shutdown_timeout": "server.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - FINGERPRINT_SALT -> fingerprint.salt
//   - DETECTION_TIMEZONE -> detection.timezone
//   - LOG_LEVEL -> logging.level
//
// Unmapped variables return "" and are skipped so unrelated environment
// variables never leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
