// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package fingerprint

import "time"

// DeviceType is the coarse form factor derived from the user agent.
type DeviceType string

const (
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeTablet  DeviceType = "tablet"
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeUnknown DeviceType = "unknown"
)

const (
	// UnknownFamily is reported when no browser or OS pattern matches.
	UnknownFamily = "Unknown"

	// UnknownVersion is reported when a family matched without a version.
	UnknownVersion = "unknown"
)

// RawFingerprint is the telemetry payload collected client-side.
// No field is validated; empty values are treated as missing signals.
type RawFingerprint struct {
	UserAgent           string   `json:"userAgent"`
	ScreenResolution    string   `json:"screenResolution"`
	Timezone            string   `json:"timezone"`
	Language            string   `json:"language"`
	Platform            string   `json:"platform"`
	ColorDepth          int      `json:"colorDepth"`
	HardwareConcurrency int      `json:"hardwareConcurrency"`
	DeviceMemory        *float64 `json:"deviceMemory,omitempty"`
	Canvas              string   `json:"canvas,omitempty"`
	WebGL               string   `json:"webgl,omitempty"`
	Audio               string   `json:"audio,omitempty"`
	Fonts               []string `json:"fonts,omitempty"`
	Plugins             []string `json:"plugins,omitempty"`
	CookieEnabled       bool     `json:"cookieEnabled"`
	DoNotTrack          bool     `json:"doNotTrack"`

	// Network context. Carried for collaborators, not hashed.
	ClientIP string            `json:"ip,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

// ProcessedFingerprint is the verdict produced for one RawFingerprint.
type ProcessedFingerprint struct {
	Hash           string     `json:"hash"`
	RiskScore      int        `json:"risk_score"` // 0-100
	DeviceType     DeviceType `json:"device_type"`
	BrowserFamily  string     `json:"browser_family"`
	BrowserVersion string     `json:"browser_version"`
	OSFamily       string     `json:"os_family"`
	OSVersion      string     `json:"os_version"`
	IsBot          bool       `json:"is_bot"`
	Confidence     int        `json:"confidence"` // 0-100
	CreatedAt      time.Time  `json:"created_at"`
}

// Suspicion records why a fingerprint was flagged.
type Suspicion struct {
	Reason   string    `json:"reason"`
	MarkedAt time.Time `json:"marked_at"`
}

// Comparison is the result of comparing two registered fingerprints.
type Comparison struct {
	Similarity        float64  `json:"similarity"` // 0.0-1.0
	IsSameDevice      bool     `json:"is_same_device"`
	ChangedComponents []string `json:"changed_components"`
	Note              string   `json:"note,omitempty"`
}

// DeviceStatistics aggregates the fingerprints currently retained.
type DeviceStatistics struct {
	Total            int            `json:"total"`
	ByDeviceType     map[string]int `json:"by_device_type"`
	ByBrowser        map[string]int `json:"by_browser"`
	ByOS             map[string]int `json:"by_os"`
	Suspicious       int            `json:"suspicious"`
	AverageRiskScore float64        `json:"average_risk_score"`
}
