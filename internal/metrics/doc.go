// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package metrics exposes Prometheus collectors for the engine.

All collectors are registered on the default registry via promauto and are
served by the /metrics endpoint of internal/api.

# Metric Families

Fingerprints:
  - sentinel_fingerprints_processed_total{device_type,is_bot}
  - sentinel_fingerprint_risk_score (histogram)
  - sentinel_registry_fingerprints, sentinel_registry_suspicious

Behavior and anomalies:
  - sentinel_behavior_patterns
  - sentinel_anomalies_detected_total{type,severity}
  - sentinel_anomaly_log_entries
  - sentinel_login_assessments_total{level}

Maintenance:
  - sentinel_maintenance_removed_total{target}
  - sentinel_maintenance_duration_seconds
  - sentinel_maintenance_last_run_timestamp

HTTP:
  - sentinel_http_requests_total{method,route,status}
  - sentinel_http_request_duration_seconds{method,route}

# Usage

Components call the Record and Set helpers rather than touching collectors:

	metrics.RecordAnomaly("NEW_DEVICE", "HIGH")
	metrics.SetRegistrySize(reg.Len(), reg.SuspiciousCount())
*/
package metrics
