// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package logging

import (
	"net/netip"
	"strings"

	"github.com/rs/zerolog"
)

// SecurityLogger records trust verdicts. Identifiers are masked before they
// reach the log stream.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("security")}
}

// NewSecurityLoggerWithLogger creates a security logger on logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// LogBotDetected records a fingerprint classified as automated.
func (l *SecurityLogger) LogBotDetected(hash, userAgent string, riskScore int) {
	l.logger.Info().
		Str("event", "bot_detected").
		Str("fingerprint", SanitizeHash(hash)).
		Str("user_agent", truncateString(userAgent, 100)).
		Int("risk_score", riskScore).
		Msg("")
}

// LogSuspiciousMarked records a fingerprint being flagged.
func (l *SecurityLogger) LogSuspiciousMarked(hash, reason string) {
	l.logger.Warn().
		Str("event", "fingerprint_suspicious").
		Str("fingerprint", SanitizeHash(hash)).
		Str("reason", truncateString(reason, 200)).
		Msg("")
}

// LogAnomalies records the anomalies raised for one login attempt.
func (l *SecurityLogger) LogAnomalies(userID, ip string, types []string) {
	if len(types) == 0 {
		return
	}
	l.logger.Info().
		Str("event", "anomalies_detected").
		Str("user_id", SanitizeUserID(userID)).
		Str("ip", SanitizeIP(ip)).
		Strs("types", types).
		Int("count", len(types)).
		Msg("")
}

// LogRiskLevel records a user's aggregate risk when it is above LOW.
func (l *SecurityLogger) LogRiskLevel(userID, level string, score int) {
	l.logger.Warn().
		Str("event", "user_risk_elevated").
		Str("user_id", SanitizeUserID(userID)).
		Str("level", level).
		Int("score", score).
		Msg("")
}

// SanitizeUserID masks a user ID for privacy.
// Example: "user-12345678" -> "user...5678"
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	if len(userID) <= 8 {
		return "***"
	}
	return userID[:4] + "..." + userID[len(userID)-4:]
}

// SanitizeHash keeps the first 12 hex characters of a fingerprint hash,
// enough to correlate log lines without publishing the identity.
func SanitizeHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}

// SanitizeIP zeroes the host part of an address: the last octet of IPv4,
// everything past /48 for IPv6. Unparseable input is masked entirely.
// Example: "203.0.113.42" -> "203.0.113.0"
func SanitizeIP(ip string) string {
	if ip == "" {
		return ""
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return "***"
	}
	bits := 48
	if addr.Is4() || addr.Is4In6() {
		addr = addr.Unmap()
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "***"
	}
	return prefix.Addr().String()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
