// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

// Package detection compares login activity against a user's behavioral
// baseline and grades the differences.
//
// Detection Architecture:
//
//	Activity -> Detector -> Rules (time, ip, device, location) -> AnomalyEvent log
//	               |                                                 |
//	               v                                                 v
//	        behavior.Pattern                              UserRiskScore / Statistics
//
// Supported Rules, evaluated in this order:
//   - Unusual Time (LOW, 0.6): the login hour carries under 5% of the
//     user's historical logins; needs at least 5 prior logins
//   - New IP Address (MEDIUM, 0.8)
//   - New Device (HIGH, 0.9)
//   - New Location (MEDIUM, 0.7)
//
// A user without a pattern yields no anomalies (cold start).
//
// Ordering contract: DetectAnomalies must run before the same activity is
// absorbed into the baseline with behavior.Store.Update. Updating first makes
// the new IP, device and location look familiar and hides the anomaly.
// engine.Engine.AssessLogin enforces this order.
//
// Risk Scoring:
// Anomalies of the last 24 hours count LOW=10, MEDIUM=25, HIGH=50, capped
// at 100. Scores of 75 and above are HIGH, 35 and above MEDIUM.
//
// The anomaly log only shrinks through ClearOldAnomalies, which an external
// scheduler is expected to call.
package detection
