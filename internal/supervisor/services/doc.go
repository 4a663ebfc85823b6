// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package services adapts Sentinel components to suture v4's Serve pattern.

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

MaintenanceService wraps the engine's RunWithContext loop, which sweeps
old fingerprints, old anomalies and stale behavior patterns on an interval.

HTTPServerService wraps an *http.Server. ListenAndServe runs in a goroutine;
on context cancellation Shutdown drains connections within a timeout.

Both implement fmt.Stringer so supervisor events name the service.
*/
package services
