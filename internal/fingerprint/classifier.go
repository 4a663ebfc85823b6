// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package fingerprint

import (
	"regexp"
	"strings"
)

// Classification is what a Classifier derives from a user agent string.
type Classification struct {
	DeviceType     DeviceType
	BrowserFamily  string
	BrowserVersion string
	OSFamily       string
	OSVersion      string
}

// Classifier maps a user agent string to device, browser and OS families.
// Implementations must be safe for concurrent use and must never fail:
// unresolved parts are reported as DeviceTypeUnknown, UnknownFamily and
// UnknownVersion.
type Classifier interface {
	Classify(userAgent string) Classification
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(userAgent string) Classification

// Classify calls f(userAgent).
func (f ClassifierFunc) Classify(userAgent string) Classification {
	return f(userAgent)
}

// deviceRule matches a form factor. exclude, when set, vetoes a match.
type deviceRule struct {
	deviceType DeviceType
	match      *regexp.Regexp
	exclude    *regexp.Regexp
}

// familyRule matches a browser or OS family. The first capture group, if
// present and non-empty, is the version.
type familyRule struct {
	family string
	match  *regexp.Regexp
}

// RegexClassifier is the default Classifier. Rules are tried in order and the
// first match wins, so precedence is expressed by position in each list.
type RegexClassifier struct {
	devices  []deviceRule
	browsers []familyRule
	systems  []familyRule
}

// NewRegexClassifier returns a classifier with the built-in rule tables.
//
// Device precedence is mobile, then tablet, then desktop. Browser precedence
// puts Edge and Opera before Chrome (their UAs also say "Chrome") and Chrome
// before Safari (Chrome UAs also say "Safari"). OS precedence puts iOS before
// macOS ("like Mac OS X") and Android before Linux.
func NewRegexClassifier() *RegexClassifier {
	return &RegexClassifier{
		devices: []deviceRule{
			{
				deviceType: DeviceTypeMobile,
				match:      regexp.MustCompile(`(?i)iphone|ipod|android.+mobile|blackberry|bb10|iemobile|opera mini|windows phone|\bmobile\b`),
				exclude:    regexp.MustCompile(`(?i)ipad|tablet`),
			},
			{
				deviceType: DeviceTypeTablet,
				match:      regexp.MustCompile(`(?i)ipad|tablet|kindle|silk/|playbook|android`),
			},
			{
				deviceType: DeviceTypeDesktop,
				match:      regexp.MustCompile(`(?i)windows nt|macintosh|mac os x|x11|linux|cros`),
			},
		},
		browsers: []familyRule{
			{"Edge", regexp.MustCompile(`(?i)\b(?:edg|edge|edga|edgios)/([\d.]+)`)},
			{"Opera", regexp.MustCompile(`(?i)\b(?:opr|opera)/([\d.]+)`)},
			{"Samsung Internet", regexp.MustCompile(`(?i)samsungbrowser/([\d.]+)`)},
			{"Firefox", regexp.MustCompile(`(?i)\b(?:firefox|fxios)/([\d.]+)`)},
			{"Chrome", regexp.MustCompile(`(?i)\b(?:headlesschrome|chrome|crios|chromium)/([\d.]+)`)},
			{"Safari", regexp.MustCompile(`(?i)version/([\d.]+).*safari/`)},
			{"Internet Explorer", regexp.MustCompile(`(?i)(?:msie |trident/.*rv:)([\d.]+)`)},
		},
		systems: []familyRule{
			{"Windows", regexp.MustCompile(`(?i)windows(?: nt| phone)? ?([\d.]+)?`)},
			{"iOS", regexp.MustCompile(`(?i)(?:iphone|ipad|ipod).*?os ([\d_]+)`)},
			{"Android", regexp.MustCompile(`(?i)android ?([\d.]+)?`)},
			{"Chrome OS", regexp.MustCompile(`(?i)cros \S+ ([\d.]+)`)},
			{"macOS", regexp.MustCompile(`(?i)mac os x ?([\d_.]+)?`)},
			{"Linux", regexp.MustCompile(`(?i)(linux|x11)`)},
		},
	}
}

// Classify implements Classifier.
func (c *RegexClassifier) Classify(userAgent string) Classification {
	browser, browserVersion := matchFamily(c.browsers, userAgent)
	osFamily, osVersion := matchFamily(c.systems, userAgent)

	// Linux carries no version; the capture group is the keyword itself.
	if osFamily == "Linux" {
		osVersion = UnknownVersion
	}

	return Classification{
		DeviceType:     c.deviceType(userAgent),
		BrowserFamily:  browser,
		BrowserVersion: browserVersion,
		OSFamily:       osFamily,
		OSVersion:      osVersion,
	}
}

func (c *RegexClassifier) deviceType(userAgent string) DeviceType {
	if userAgent == "" {
		return DeviceTypeUnknown
	}
	for _, rule := range c.devices {
		if !rule.match.MatchString(userAgent) {
			continue
		}
		if rule.exclude != nil && rule.exclude.MatchString(userAgent) {
			continue
		}
		return rule.deviceType
	}
	return DeviceTypeUnknown
}

func matchFamily(rules []familyRule, userAgent string) (family, version string) {
	if userAgent == "" {
		return UnknownFamily, UnknownVersion
	}
	for _, rule := range rules {
		m := rule.match.FindStringSubmatch(userAgent)
		if m == nil {
			continue
		}
		version = UnknownVersion
		if len(m) > 1 && m[1] != "" {
			version = strings.ReplaceAll(m[1], "_", ".")
		}
		return rule.family, version
	}
	return UnknownFamily, UnknownVersion
}
