// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Fingerprint Metrics
	FingerprintsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_fingerprints_processed_total",
			Help: "Total number of fingerprints processed",
		},
		[]string{"device_type", "is_bot"},
	)

	FingerprintRiskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_fingerprint_risk_score",
			Help:    "Distribution of fingerprint risk scores (0-100)",
			Buckets: prometheus.LinearBuckets(10, 10, 10), // 10, 20, ..., 100
		},
	)

	RegistryFingerprints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_registry_fingerprints",
			Help: "Current number of fingerprints held by the device registry",
		},
	)

	RegistrySuspicious = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_registry_suspicious",
			Help: "Current number of fingerprints marked suspicious",
		},
	)

	// Behavior Metrics
	BehaviorPatterns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_behavior_patterns",
			Help: "Current number of per-user behavior patterns",
		},
	)

	// Anomaly Metrics
	AnomaliesDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_anomalies_detected_total",
			Help: "Total number of anomalies detected",
		},
		[]string{"type", "severity"},
	)

	AnomalyLogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_anomaly_log_entries",
			Help: "Current number of entries in the anomaly log",
		},
	)

	LoginAssessments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_login_assessments_total",
			Help: "Total number of login assessments by resulting risk level",
		},
		[]string{"level"},
	)

	// Maintenance Metrics
	MaintenanceRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_maintenance_removed_total",
			Help: "Total number of entries removed by maintenance",
		},
		[]string{"target"}, // "fingerprints", "anomalies", "patterns"
	)

	MaintenanceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_maintenance_duration_seconds",
			Help:    "Duration of maintenance runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	MaintenanceLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_maintenance_last_run_timestamp",
			Help: "Unix timestamp of the last completed maintenance run",
		},
	)

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_http_requests_total",
			Help: "Total number of operational HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_http_request_duration_seconds",
			Help:    "Operational HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentinel_app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordFingerprintProcessed records one Process call.
func RecordFingerprintProcessed(deviceType string, riskScore int, isBot bool) {
	FingerprintsProcessed.WithLabelValues(deviceType, strconv.FormatBool(isBot)).Inc()
	FingerprintRiskScore.Observe(float64(riskScore))
}

// SetRegistrySize updates the device registry gauges.
func SetRegistrySize(total, suspicious int) {
	RegistryFingerprints.Set(float64(total))
	RegistrySuspicious.Set(float64(suspicious))
}

// SetBehaviorPatterns updates the pattern count gauge.
func SetBehaviorPatterns(n int) {
	BehaviorPatterns.Set(float64(n))
}

// RecordAnomaly counts one emitted anomaly.
func RecordAnomaly(anomalyType, severity string) {
	AnomaliesDetected.WithLabelValues(anomalyType, severity).Inc()
}

// SetAnomalyLogSize updates the anomaly log gauge.
func SetAnomalyLogSize(n int) {
	AnomalyLogSize.Set(float64(n))
}

// RecordLoginAssessment counts an assessment by its risk level.
func RecordLoginAssessment(level string) {
	LoginAssessments.WithLabelValues(level).Inc()
}

// RecordMaintenanceRemoval counts entries purged from target.
func RecordMaintenanceRemoval(target string, removed int) {
	if removed > 0 {
		MaintenanceRemoved.WithLabelValues(target).Add(float64(removed))
	}
}

// RecordMaintenanceRun records a completed maintenance pass.
func RecordMaintenanceRun(duration time.Duration, finished time.Time) {
	MaintenanceDuration.Observe(duration.Seconds())
	MaintenanceLastRun.Set(float64(finished.Unix()))
}

// RecordHTTPRequest records an operational HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
