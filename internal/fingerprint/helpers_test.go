// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package fingerprint

import "time"

const (
	uaChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaHeadless      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) HeadlessChrome/91.0.4472.124 Safari/537.36"
	uaIPhone        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1"
	uaFirefoxLinux  = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
)

// organicFingerprint returns a fully populated desktop fingerprint that
// scores zero risk and full confidence.
func organicFingerprint() *RawFingerprint {
	mem := 8.0
	return &RawFingerprint{
		UserAgent:           uaChromeWindows,
		ScreenResolution:    "1920x1080",
		Timezone:            "Europe/Berlin",
		Language:            "de-DE",
		Platform:            "Win32",
		ColorDepth:          24,
		HardwareConcurrency: 8,
		DeviceMemory:        &mem,
		Canvas:              "data:image/png;base64,iVBORw0KGgo",
		WebGL:               "ANGLE (NVIDIA GeForce RTX 3070 Direct3D11)",
		Audio:               "124.04347527516074",
		Fonts:               []string{"Arial", "Calibri", "Segoe UI"},
		Plugins:             []string{"PDF Viewer", "Chrome PDF Viewer"},
		CookieEnabled:       true,
		ClientIP:            "203.0.113.5",
		Headers:             map[string]string{"Accept-Language": "de-DE,de;q=0.9"},
	}
}

// headlessFingerprint is the canonical automation scenario.
func headlessFingerprint() *RawFingerprint {
	return &RawFingerprint{
		UserAgent:           uaHeadless,
		ScreenResolution:    "800x600",
		Timezone:            "UTC",
		Language:            "en-US",
		Platform:            "Linux x86_64",
		ColorDepth:          8,
		HardwareConcurrency: 0,
		CookieEnabled:       false,
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}
