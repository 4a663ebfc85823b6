// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package services

import (
	"context"
)

// MaintenanceRunner is satisfied by *engine.Engine.
type MaintenanceRunner interface {
	// RunWithContext sweeps expired state on an interval and returns when
	// ctx is canceled.
	RunWithContext(ctx context.Context) error
}

// MaintenanceService runs retention sweeps under supervision. If the loop
// panics or returns early the supervisor restarts it.
type MaintenanceService struct {
	runner MaintenanceRunner
	name   string
}

// NewMaintenanceService wraps runner.
func NewMaintenanceService(runner MaintenanceRunner) *MaintenanceService {
	return &MaintenanceService{
		runner: runner,
		name:   "maintenance",
	}
}

// Serve implements suture.Service.
func (m *MaintenanceService) Serve(ctx context.Context) error {
	return m.runner.RunWithContext(ctx)
}

// String implements fmt.Stringer for logging.
func (m *MaintenanceService) String() string {
	return m.name
}
