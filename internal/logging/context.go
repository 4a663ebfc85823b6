// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// ContextWithLogger stores logger in ctx.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// Ctx returns the logger stored in ctx, or the global logger.
//
//	logging.Ctx(ctx).Info().Msg("maintenance started")
func Ctx(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(zerolog.Logger); ok {
		return &logger
	}
	l := Logger()
	return &l
}

// WithComponent creates a child of the global logger with a component field.
//
//	regLogger := logging.WithComponent("registry")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
