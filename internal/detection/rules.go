// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package detection

import (
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/sentinel/internal/behavior"
)

// Rule evaluates one kind of deviation from a user's baseline.
type Rule interface {
	// Type returns the anomaly type this rule emits.
	Type() AnomalyType

	// Evaluate compares activity against pattern. loginTime is the
	// activity's login time with zero already replaced by now.
	Evaluate(pattern *behavior.Pattern, activity behavior.Activity, loginTime time.Time) (Anomaly, bool)
}

// UnusualTimeRule flags logins in an hour of the day the user rarely uses.
type UnusualTimeRule struct {
	// Location is the timezone hours are bucketed in.
	Location *time.Location

	// MinHistory is the number of prior logins required before the rule applies.
	MinHistory int

	// Threshold: an hour holding less than this share of history is unusual.
	Threshold float64
}

// Type returns AnomalyUnusualTime.
func (r *UnusualTimeRule) Type() AnomalyType { return AnomalyUnusualTime }

// Evaluate implements Rule.
func (r *UnusualTimeRule) Evaluate(pattern *behavior.Pattern, _ behavior.Activity, loginTime time.Time) (Anomaly, bool) {
	history := pattern.LoginTimes
	if len(history) < r.MinHistory || len(history) == 0 {
		return Anomaly{}, false
	}

	var hours [24]int
	for _, t := range history {
		hours[t.In(r.Location).Hour()]++
	}

	hour := loginTime.In(r.Location).Hour()
	probability := float64(hours[hour]) / float64(len(history))
	if probability >= r.Threshold {
		return Anomaly{}, false
	}

	return Anomaly{
		Type:       AnomalyUnusualTime,
		Severity:   SeverityLow,
		Confidence: 0.6,
		Description: fmt.Sprintf("Login at %02d:00 %s is unusual (%.1f%% of previous logins)",
			hour, r.Location, probability*100),
	}, true
}

// NewIPRule flags an IP address missing from the user's IP history.
type NewIPRule struct{}

// Type returns AnomalyNewIP.
func (NewIPRule) Type() AnomalyType { return AnomalyNewIP }

// Evaluate implements Rule.
func (NewIPRule) Evaluate(pattern *behavior.Pattern, activity behavior.Activity, _ time.Time) (Anomaly, bool) {
	if activity.IPAddress == "" || slices.Contains(pattern.IPAddresses, activity.IPAddress) {
		return Anomaly{}, false
	}
	return Anomaly{
		Type:        AnomalyNewIP,
		Severity:    SeverityMedium,
		Confidence:  0.8,
		Description: "Login from a new IP address",
	}, true
}

// NewDeviceRule flags a device fingerprint missing from the user's devices.
type NewDeviceRule struct{}

// Type returns AnomalyNewDevice.
func (NewDeviceRule) Type() AnomalyType { return AnomalyNewDevice }

// Evaluate implements Rule.
func (NewDeviceRule) Evaluate(pattern *behavior.Pattern, activity behavior.Activity, _ time.Time) (Anomaly, bool) {
	if activity.DeviceFingerprint == "" || slices.Contains(pattern.Devices, activity.DeviceFingerprint) {
		return Anomaly{}, false
	}
	return Anomaly{
		Type:        AnomalyNewDevice,
		Severity:    SeverityHigh,
		Confidence:  0.9,
		Description: "Login from a new device",
	}, true
}

// NewLocationRule flags a location missing from the user's locations.
type NewLocationRule struct{}

// Type returns AnomalyNewLocation.
func (NewLocationRule) Type() AnomalyType { return AnomalyNewLocation }

// Evaluate implements Rule.
func (NewLocationRule) Evaluate(pattern *behavior.Pattern, activity behavior.Activity, _ time.Time) (Anomaly, bool) {
	if activity.Location == "" || slices.Contains(pattern.Locations, activity.Location) {
		return Anomaly{}, false
	}
	return Anomaly{
		Type:        AnomalyNewLocation,
		Severity:    SeverityMedium,
		Confidence:  0.7,
		Description: fmt.Sprintf("Login from a new location: %s", activity.Location),
	}, true
}
