// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package engine

import (
	"context"
	"time"

	"github.com/tomtom215/sentinel/internal/metrics"
)

// MaintenanceReport counts what one sweep removed.
type MaintenanceReport struct {
	Fingerprints int           `json:"fingerprints"`
	Anomalies    int           `json:"anomalies"`
	Patterns     int           `json:"patterns"`
	Duration     time.Duration `json:"duration"`
}

// RunMaintenance evicts old fingerprints, purges old anomalies and, when a
// pattern TTL is configured, expires stale behavior patterns. It is
// idempotent and safe to run alongside other calls.
func (e *Engine) RunMaintenance() MaintenanceReport {
	start := time.Now()

	report := MaintenanceReport{
		Fingerprints: e.registry.CleanupOldFingerprints(e.maintenance.FingerprintMaxAge),
		Anomalies:    e.detector.ClearOldAnomalies(e.maintenance.AnomalyMaxAge),
		Patterns:     e.patterns.ExpireStale(e.maintenance.PatternTTL),
	}
	report.Duration = time.Since(start)

	metrics.RecordMaintenanceRemoval("fingerprints", report.Fingerprints)
	metrics.RecordMaintenanceRemoval("anomalies", report.Anomalies)
	metrics.RecordMaintenanceRemoval("patterns", report.Patterns)
	metrics.RecordMaintenanceRun(report.Duration, e.now())

	e.logger.Info().
		Int("fingerprints_removed", report.Fingerprints).
		Int("anomalies_removed", report.Anomalies).
		Int("patterns_removed", report.Patterns).
		Dur("duration", report.Duration).
		Msg("Maintenance completed")

	return report
}

// RunWithContext runs RunMaintenance every maintenance interval until ctx
// is canceled, then returns ctx.Err(). It satisfies the supervisor's
// service contract.
func (e *Engine) RunWithContext(ctx context.Context) error {
	e.logger.Info().Dur("interval", e.maintenance.Interval).Msg("Maintenance loop started")

	ticker := time.NewTicker(e.maintenance.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info().Msg("Maintenance loop stopped")
			return ctx.Err()
		case <-ticker.C:
			e.RunMaintenance()
		}
	}
}
