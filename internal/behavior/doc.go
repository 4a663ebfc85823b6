// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

// Package behavior keeps a bounded rolling history of each user's logins:
// when they happen, and from which IPs, devices and locations.
//
// Histories are fixed-capacity ring buffers. Login times evict oldest-first;
// IPs, devices and locations are deduplicated before they are appended, so a
// value already in the history does not refresh its position.
package behavior
