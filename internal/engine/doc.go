// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package engine ties fingerprinting, behavioral baselines and anomaly
detection into one instance that owns all of their state.

An Engine holds a fingerprint Registry and Processor, a behavior Store and
a detection Detector. Nothing is global: tests and callers may build as many
engines as they need, each isolated from the others.

# Login Flow

Anomaly detection must see a user's baseline before the login is absorbed
into it. AssessLogin does both in the right order:

	result, err := eng.AssessLogin(engine.LoginAttempt{
	    UserID: "user-42",
	    Activity: behavior.Activity{
	        IPAddress:         "203.0.113.7",
	        DeviceFingerprint: fp.Hash,
	        Location:          "Berlin, DE",
	    },
	})

DetectAnomalies and Update remain available for callers that manage the
order themselves.

# Maintenance

Retention is never applied implicitly. RunMaintenance sweeps old
fingerprints, old anomalies and (with a pattern TTL) stale baselines;
RunWithContext repeats it on an interval and is meant to run under the
supervisor tree.
*/
package engine
