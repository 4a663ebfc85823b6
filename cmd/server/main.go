// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/sentinel/internal/api"
	"github.com/tomtom215/sentinel/internal/config"
	"github.com/tomtom215/sentinel/internal/engine"
	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/metrics"
	"github.com/tomtom215/sentinel/internal/supervisor"
	"github.com/tomtom215/sentinel/internal/supervisor/services"
)

// version is set at build time: -ldflags "-X main.version=1.2.3".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("timezone", cfg.Detection.Timezone).
		Bool("maintenance", cfg.Maintenance.Enabled).
		Str("listen_addr", cfg.Server.ListenAddr).
		Msg("Starting Sentinel")

	if cfg.UsesDefaultSalt() {
		logging.Warn().Msg("FINGERPRINT_SALT is not set; fingerprints use the public default salt and can be precomputed")
	}

	eng, err := engine.NewFromConfig(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build engine")
	}

	treeConfig := supervisor.DefaultTreeConfig()
	// Leave the HTTP service room to finish its own drain.
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout + 5*time.Second
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Maintenance.Enabled {
		tree.AddCoreService(services.NewMaintenanceService(eng))
		logging.Info().Dur("interval", cfg.Maintenance.Interval).Msg("Maintenance service added")
	} else {
		logging.Warn().Msg("Maintenance disabled; fingerprints and anomalies are retained until restart")
	}

	health := api.NewHandler(eng)
	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           api.NewRouter(health, api.DefaultRouterConfig()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	health.SetReady(true)
	logging.Info().Msg("Supervisor tree started")

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		health.SetReady(false)
		// ServeBackground sends exactly one result and never closes the channel.
		treeErr = <-errCh
	case treeErr = <-errCh:
		health.SetReady(false)
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree stopped with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Sentinel stopped")
	if len(unstopped) > 0 {
		stop()
		os.Exit(1)
	}
}
