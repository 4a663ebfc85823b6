// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct
// metadata). Field names in errors follow koanf/json tags so that a failing
// config value is reported under the key the operator actually wrote:
//
//	type DetectionConfig struct {
//	    Timezone string `koanf:"timezone" validate:"required,timezone"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    // "detection.timezone must be Local or an IANA timezone name"
//	}
package validation
