// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package fingerprint

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // known-timezone checks must not depend on the host zoneinfo

	"golang.org/x/text/language"

	"github.com/tomtom215/sentinel/internal/cache"
)

// automationPenalties are additive: a UA matching several keywords pays each.
var automationPenalties = map[string]int{
	"headless":  50,
	"selenium":  60,
	"phantomjs": 60,
	"bot":       40,
}

// Risk penalties for individual signals.
const (
	penaltyUncommonResolution = 10
	penaltyCookiesDisabled    = 20
	penaltyLowColorDepth      = 15
	penaltyNoConcurrency      = 10
	penaltyMissingCanvas      = 15
	penaltyMissingWebGL       = 10
	penaltyNoFonts            = 20
	penaltyNoPlugins          = 15
	penaltyLowEntropy         = 30

	minColorDepth = 16
)

// Confidence contributions.
const (
	confidenceCanvas     = 25
	confidenceWebGL      = 20
	confidenceAudio      = 15
	confidenceFonts      = 15
	confidencePlugins    = 10
	confidenceResolution = 5
	confidenceTimezone   = 5
	confidenceLanguage   = 5
)

// entropyFields is the number of core fields sampled by Entropy.
const entropyFields = 7

// lowEntropyThreshold flags fingerprints whose core fields are nearly all identical.
const lowEntropyThreshold = 2.0 / entropyFields

// botKeywords mark a user agent as automated.
var botKeywords = []string{
	"bot", "crawler", "spider", "scraper", "headless", "selenium", "phantomjs",
	"webdriver", "automated", "test", "monitor", "check", "audit",
}

var (
	automationMatcher = cache.NewKeywordMatcher("headless", "selenium", "phantomjs", "bot")
	botMatcher        = cache.NewKeywordMatcher(botKeywords...)
)

// commonResolutions is the allow-list of screen resolutions seen on real devices.
var commonResolutions = map[string]struct{}{
	"1920x1080": {}, "1366x768": {}, "1536x864": {}, "1440x900": {},
	"1280x720": {}, "1600x900": {}, "1280x800": {}, "1280x1024": {},
	"1680x1050": {}, "2560x1440": {}, "3840x2160": {}, "1024x768": {},
	"2560x1600": {}, "1920x1200": {},
	"360x640": {}, "375x667": {}, "414x896": {}, "390x844": {},
	"393x873": {}, "412x915": {}, "428x926": {}, "768x1024": {},
	"810x1080": {}, "820x1180": {}, "834x1194": {},
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RiskScore returns the additive automation risk of raw, clamped to [0,100].
func RiskScore(raw *RawFingerprint) int {
	score := 0
	for _, kw := range automationMatcher.Matches(raw.UserAgent) {
		score += automationPenalties[kw]
	}

	if !IsCommonResolution(raw.ScreenResolution) {
		score += penaltyUncommonResolution
	}
	if !raw.CookieEnabled {
		score += penaltyCookiesDisabled
	}
	if raw.ColorDepth < minColorDepth {
		score += penaltyLowColorDepth
	}
	if raw.HardwareConcurrency == 0 {
		score += penaltyNoConcurrency
	}
	if raw.Canvas == "" {
		score += penaltyMissingCanvas
	}
	if raw.WebGL == "" {
		score += penaltyMissingWebGL
	}
	if len(raw.Fonts) == 0 {
		score += penaltyNoFonts
	}
	if len(raw.Plugins) == 0 {
		score += penaltyNoPlugins
	}
	if Entropy(raw) < lowEntropyThreshold {
		score += penaltyLowEntropy
	}

	return clamp(score, 0, 100)
}

// IsBot reports whether raw looks automated: a bot keyword in the user agent,
// no canvas and no WebGL signature, or zero concurrency together with a
// reported device memory of zero.
func IsBot(raw *RawFingerprint) bool {
	if botMatcher.Contains(raw.UserAgent) {
		return true
	}

	if raw.Canvas == "" && raw.WebGL == "" {
		return true
	}

	return raw.HardwareConcurrency == 0 && raw.DeviceMemory != nil && *raw.DeviceMemory == 0
}

// Confidence returns how much usable signal raw carries, clamped to [0,100].
func Confidence(raw *RawFingerprint) int {
	score := 0
	if raw.Canvas != "" {
		score += confidenceCanvas
	}
	if raw.WebGL != "" {
		score += confidenceWebGL
	}
	if raw.Audio != "" {
		score += confidenceAudio
	}
	if len(raw.Fonts) > 0 {
		score += confidenceFonts
	}
	if len(raw.Plugins) > 0 {
		score += confidencePlugins
	}
	if IsCommonResolution(raw.ScreenResolution) {
		score += confidenceResolution
	}
	if IsKnownTimezone(raw.Timezone) {
		score += confidenceTimezone
	}
	if IsKnownLanguage(raw.Language) {
		score += confidenceLanguage
	}
	return clamp(score, 0, 100)
}

// Entropy is the ratio of distinct values among the seven core fields
// (user agent, resolution, timezone, language, platform, color depth,
// hardware concurrency) to seven. Organic fingerprints sit near 1.0.
func Entropy(raw *RawFingerprint) float64 {
	fields := [entropyFields]string{
		raw.UserAgent,
		raw.ScreenResolution,
		raw.Timezone,
		raw.Language,
		raw.Platform,
		strconv.Itoa(raw.ColorDepth),
		strconv.Itoa(raw.HardwareConcurrency),
	}

	distinct := make(map[string]struct{}, entropyFields)
	for _, f := range fields {
		distinct[f] = struct{}{}
	}
	return float64(len(distinct)) / entropyFields
}

// IsCommonResolution reports whether res is on the allow-list.
func IsCommonResolution(res string) bool {
	_, ok := commonResolutions[strings.ToLower(strings.TrimSpace(res))]
	return ok
}

// IsKnownTimezone reports whether tz is a loadable IANA zone name.
func IsKnownTimezone(tz string) bool {
	if tz == "" || tz == "Local" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// IsKnownLanguage reports whether lang is a well-formed BCP 47 tag.
func IsKnownLanguage(lang string) bool {
	if lang == "" {
		return false
	}
	tag, err := language.Parse(lang)
	return err == nil && tag != language.Und
}
