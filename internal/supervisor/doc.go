// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package supervisor runs Sentinel's long-lived services under suture v4.

# Overview

	RootSupervisor ("sentinel")
	├── CoreSupervisor ("core-layer")
	│   └── MaintenanceService (if maintenance.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with backoff. Each layer counts failures on its
own, so a listener that cannot bind does not stop retention sweeps.

# Logging

Supervisor events go through sutureslog into the zerolog-backed slog
logger from logging.NewSlogLogger.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCoreService(services.NewMaintenanceService(eng))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

See the services subpackage for the wrappers.
*/
package supervisor
