// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package fingerprint

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/metrics"
)

// ProcessorConfig configures a Processor.
type ProcessorConfig struct {
	// Salt is mixed into every hash. Empty means DefaultSalt.
	Salt string

	// Classifier derives device, browser and OS. Default: NewRegexClassifier().
	Classifier Classifier

	// Clock returns the current time. Default: time.Now.
	Clock func() time.Time
}

// DefaultProcessorConfig returns a configuration using DefaultSalt.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Salt:       DefaultSalt,
		Classifier: NewRegexClassifier(),
		Clock:      time.Now,
	}
}

// Processor turns raw telemetry into ProcessedFingerprints and registers
// them. It holds no mutable state of its own and is safe for concurrent use.
type Processor struct {
	salt       string
	classifier Classifier
	now        func() time.Time
	registry   *Registry
	logger     zerolog.Logger
	security   *logging.SecurityLogger
}

// NewProcessor creates a processor that registers results in registry.
// A nil registry gets a private one with default settings.
func NewProcessor(cfg ProcessorConfig, registry *Registry) *Processor {
	logger := logging.WithComponent("fingerprint")

	if cfg.Salt == "" || cfg.Salt == DefaultSalt {
		cfg.Salt = DefaultSalt
		logger.Warn().Msg("Fingerprint salt not configured, using the public default. " +
			"Hashes are guessable; set FINGERPRINT_SALT in production")
	}
	if cfg.Classifier == nil {
		cfg.Classifier = NewRegexClassifier()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if registry == nil {
		registry = NewRegistry(RegistryConfig{Clock: cfg.Clock})
	}

	return &Processor{
		salt:       cfg.Salt,
		classifier: cfg.Classifier,
		now:        cfg.Clock,
		registry:   registry,
		logger:     logger,
		security:   logging.NewSecurityLogger(),
	}
}

// Registry returns the registry results are written to.
func (p *Processor) Registry() *Registry {
	return p.registry
}

// Process hashes, scores and classifies raw, then stores the result in the
// registry, overwriting any entry with the same hash. A nil raw is processed
// as an empty fingerprint.
func (p *Processor) Process(raw *RawFingerprint) ProcessedFingerprint {
	if raw == nil {
		raw = &RawFingerprint{}
	}

	class := p.classifier.Classify(raw.UserAgent)
	fp := ProcessedFingerprint{
		Hash:           Hash(raw, p.salt),
		RiskScore:      RiskScore(raw),
		DeviceType:     class.DeviceType,
		BrowserFamily:  class.BrowserFamily,
		BrowserVersion: class.BrowserVersion,
		OSFamily:       class.OSFamily,
		OSVersion:      class.OSVersion,
		IsBot:          IsBot(raw),
		Confidence:     Confidence(raw),
		CreatedAt:      p.now(),
	}

	p.registry.Put(fp)

	metrics.RecordFingerprintProcessed(string(fp.DeviceType), fp.RiskScore, fp.IsBot)
	if fp.IsBot {
		p.security.LogBotDetected(fp.Hash, raw.UserAgent, fp.RiskScore)
	}
	p.logger.Debug().
		Str("fingerprint", logging.SanitizeHash(fp.Hash)).
		Str("device_type", string(fp.DeviceType)).
		Str("browser", fp.BrowserFamily).
		Str("os", fp.OSFamily).
		Int("risk_score", fp.RiskScore).
		Int("confidence", fp.Confidence).
		Bool("is_bot", fp.IsBot).
		Msg("Fingerprint processed")

	return fp
}
