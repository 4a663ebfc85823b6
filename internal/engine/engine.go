// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sentinel/internal/behavior"
	"github.com/tomtom215/sentinel/internal/config"
	"github.com/tomtom215/sentinel/internal/detection"
	"github.com/tomtom215/sentinel/internal/fingerprint"
	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/metrics"
	"github.com/tomtom215/sentinel/internal/validation"
)

// Config configures every component an Engine owns.
type Config struct {
	Processor   fingerprint.ProcessorConfig
	Registry    fingerprint.RegistryConfig
	Behavior    behavior.StoreConfig
	Detection   detection.Config
	Maintenance MaintenanceConfig
}

// MaintenanceConfig controls RunMaintenance and RunWithContext.
type MaintenanceConfig struct {
	Interval          time.Duration
	FingerprintMaxAge time.Duration
	AnomalyMaxAge     time.Duration

	// PatternTTL of 0 keeps behavior patterns forever.
	PatternTTL time.Duration
}

// DefaultConfig returns the default component configuration.
func DefaultConfig() Config {
	return Config{
		Processor: fingerprint.DefaultProcessorConfig(),
		Registry:  fingerprint.DefaultRegistryConfig(),
		Behavior:  behavior.DefaultStoreConfig(),
		Detection: detection.DefaultConfig(),
		Maintenance: MaintenanceConfig{
			Interval:          time.Hour,
			FingerprintMaxAge: fingerprint.DefaultMaxAge,
			AnomalyMaxAge:     detection.DefaultMaxAge,
		},
	}
}

// ConfigFrom translates application configuration.
func ConfigFrom(cfg *config.Config) (Config, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Config{}, err
	}

	out := DefaultConfig()
	out.Processor.Salt = cfg.Fingerprint.Salt
	out.Registry.SameDeviceThreshold = cfg.Fingerprint.SameDeviceThreshold
	out.Behavior.LoginHistorySize = cfg.Behavior.LoginHistorySize
	out.Behavior.IPHistorySize = cfg.Behavior.IPHistorySize
	out.Behavior.DeviceHistorySize = cfg.Behavior.DeviceHistorySize
	out.Behavior.LocationHistorySize = cfg.Behavior.LocationHistorySize
	out.Detection.Location = loc
	out.Detection.MinLoginHistory = cfg.Detection.MinLoginHistory
	out.Detection.UnusualHourThreshold = cfg.Detection.UnusualHourThreshold
	out.Detection.RiskWindow = cfg.Detection.RiskWindow
	out.Maintenance = MaintenanceConfig{
		Interval:          cfg.Maintenance.Interval,
		FingerprintMaxAge: cfg.Maintenance.FingerprintMaxAge,
		AnomalyMaxAge:     cfg.Maintenance.AnomalyMaxAge,
		PatternTTL:        cfg.Behavior.PatternTTL,
	}
	return out, nil
}

// Option customizes an Engine.
type Option func(*Config)

// WithClock makes every component read time from clock.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) {
		c.Processor.Clock = clock
		c.Registry.Clock = clock
		c.Behavior.Clock = clock
		c.Detection.Clock = clock
	}
}

// WithClassifier replaces the user-agent classifier.
func WithClassifier(classifier fingerprint.Classifier) Option {
	return func(c *Config) {
		c.Processor.Classifier = classifier
	}
}

// Engine owns all fingerprinting and behavioral state. Independent engines
// share nothing, and every method is safe for concurrent use.
type Engine struct {
	registry  *fingerprint.Registry
	processor *fingerprint.Processor
	patterns  *behavior.Store
	detector  *detection.Detector

	maintenance MaintenanceConfig
	now         func() time.Time

	// assessMu serializes detect-then-update in AssessLogin.
	assessMu sync.Mutex

	logger   zerolog.Logger
	security *logging.SecurityLogger
}

// New builds an engine from cfg.
func New(cfg Config, opts ...Option) *Engine {
	for _, opt := range opts {
		opt(&cfg)
	}
	now := cfg.Detection.Clock
	if now == nil {
		now = time.Now
	}
	if cfg.Maintenance.Interval <= 0 {
		cfg.Maintenance.Interval = time.Hour
	}

	registry := fingerprint.NewRegistry(cfg.Registry)
	patterns := behavior.NewStore(cfg.Behavior)

	return &Engine{
		registry:    registry,
		processor:   fingerprint.NewProcessor(cfg.Processor, registry),
		patterns:    patterns,
		detector:    detection.NewDetector(cfg.Detection, patterns),
		maintenance: cfg.Maintenance,
		now:         now,
		logger:      logging.WithComponent("engine"),
		security:    logging.NewSecurityLogger(),
	}
}

// NewFromConfig builds an engine from application configuration.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	ec, err := ConfigFrom(cfg)
	if err != nil {
		return nil, fmt.Errorf("engine configuration: %w", err)
	}
	return New(ec, opts...), nil
}

// Process fingerprints raw telemetry and registers the result.
func (e *Engine) Process(raw *fingerprint.RawFingerprint) fingerprint.ProcessedFingerprint {
	return e.processor.Process(raw)
}

// Fingerprint returns a registered fingerprint.
func (e *Engine) Fingerprint(hash string) (fingerprint.ProcessedFingerprint, bool) {
	return e.registry.Get(hash)
}

// CompareFingerprints compares two registered fingerprints.
func (e *Engine) CompareFingerprints(hashA, hashB string) fingerprint.Comparison {
	return e.registry.CompareFingerprints(hashA, hashB)
}

// MarkSuspicious flags hash. The hash need not be registered.
func (e *Engine) MarkSuspicious(hash, reason string) {
	e.registry.MarkSuspicious(hash, reason)
}

// IsSuspicious reports whether hash has been flagged.
func (e *Engine) IsSuspicious(hash string) bool {
	return e.registry.IsSuspicious(hash)
}

// SuspicionReason returns why hash was flagged.
func (e *Engine) SuspicionReason(hash string) (fingerprint.Suspicion, bool) {
	return e.registry.SuspicionReason(hash)
}

// DeviceStatistics aggregates the registered fingerprints.
func (e *Engine) DeviceStatistics() fingerprint.DeviceStatistics {
	return e.registry.Statistics()
}

// Update absorbs activity into userID's baseline.
func (e *Engine) Update(userID string, activity behavior.Activity) {
	e.patterns.Update(userID, activity)
}

// Pattern returns a copy of userID's baseline.
func (e *Engine) Pattern(userID string) (behavior.Pattern, bool) {
	return e.patterns.Pattern(userID)
}

// ResetPattern drops userID's baseline.
func (e *Engine) ResetPattern(userID string) bool {
	return e.patterns.Reset(userID)
}

// DetectAnomalies evaluates activity against userID's baseline. Call it
// before Update for the same activity, or use AssessLogin.
func (e *Engine) DetectAnomalies(userID string, activity behavior.Activity) []detection.AnomalyEvent {
	return e.detector.DetectAnomalies(userID, activity)
}

// UserRiskScore aggregates userID's recent anomalies.
func (e *Engine) UserRiskScore(userID string) detection.RiskAssessment {
	return e.detector.UserRiskScore(userID)
}

// AnomalyStatistics aggregates the anomaly log.
func (e *Engine) AnomalyStatistics() detection.AnomalyStatistics {
	return e.detector.Statistics()
}

// CleanupOldFingerprints evicts registry entries older than maxAge.
func (e *Engine) CleanupOldFingerprints(maxAge time.Duration) int {
	return e.registry.CleanupOldFingerprints(maxAge)
}

// ClearOldAnomalies purges anomaly log entries older than maxAge.
func (e *Engine) ClearOldAnomalies(maxAge time.Duration) int {
	return e.detector.ClearOldAnomalies(maxAge)
}

// Summary reports the size of each store.
type Summary struct {
	Fingerprints int `json:"fingerprints"`
	Suspicious   int `json:"suspicious"`
	Patterns     int `json:"patterns"`
	Anomalies    int `json:"anomalies"`
}

// Summary reports current store sizes.
func (e *Engine) Summary() Summary {
	return Summary{
		Fingerprints: e.registry.Len(),
		Suspicious:   e.registry.SuspiciousCount(),
		Patterns:     e.patterns.Len(),
		Anomalies:    e.detector.Len(),
	}
}

// LoginAttempt is one login submitted for assessment.
type LoginAttempt struct {
	UserID   string            `json:"user_id" validate:"required,max=256"`
	Activity behavior.Activity `json:"activity"`
}

// LoginAssessment is the result of AssessLogin.
type LoginAssessment struct {
	Anomalies []detection.AnomalyEvent `json:"anomalies"`
	Risk      detection.RiskAssessment `json:"risk"`
}

// AssessLogin detects anomalies for the attempt and then absorbs it into
// the user's baseline. The pair runs atomically with respect to other
// AssessLogin calls.
func (e *Engine) AssessLogin(attempt LoginAttempt) (LoginAssessment, error) {
	if err := validation.ValidateStruct(attempt); err != nil {
		return LoginAssessment{}, fmt.Errorf("invalid login attempt: %w", err)
	}

	e.assessMu.Lock()
	anomalies := e.detector.DetectAnomalies(attempt.UserID, attempt.Activity)
	e.patterns.Update(attempt.UserID, attempt.Activity)
	e.assessMu.Unlock()

	risk := e.detector.UserRiskScore(attempt.UserID)
	metrics.RecordLoginAssessment(string(risk.Level))
	if risk.Level != detection.SeverityLow {
		e.security.LogRiskLevel(attempt.UserID, string(risk.Level), risk.Score)
	}

	return LoginAssessment{Anomalies: anomalies, Risk: risk}, nil
}
