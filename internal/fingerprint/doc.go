// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

// Package fingerprint turns raw client telemetry into a canonical device
// identity and grades it for automation risk.
//
// Pipeline:
//
//	RawFingerprint -> Processor.Process -> ProcessedFingerprint -> Registry
//	                     |
//	                     +-- Classifier (device type, browser, OS)
//	                     +-- scoring (risk, bot flag, confidence, entropy)
//
// # Identity Hash
//
// The hash is SHA-256 over a length-prefixed canonical encoding of the device
// components, a format version tag and a secret salt. Length prefixes remove
// the delimiter-collision problem of joined strings ("a"+"|b" vs "a|"+"b").
// Network context (client IP, request headers) is not part of the identity so
// the same device keeps its hash across networks.
//
// The salt comes from configuration. When it is unset DefaultSalt is used,
// which is public and therefore insecure; the processor logs a warning.
//
// # Scoring
//
// Risk (0-100) and confidence (0-100) are additive heuristics clamped to
// their range. Risk measures automation indicators; confidence measures how
// much signal the fingerprint carries. The two are independent.
//
// # Registry
//
// Registry is an in-memory, concurrency-safe map from hash to processed
// fingerprint with a separate suspicion set. Entries do not expire on their
// own; CleanupOldFingerprints must be driven by a scheduler.
package fingerprint
