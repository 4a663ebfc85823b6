// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package detection

import (
	"slices"
	"time"

	"github.com/goccy/go-json"
)

// AnomalyType identifies the rule that produced an anomaly.
type AnomalyType string

const (
	AnomalyUnusualTime AnomalyType = "UNUSUAL_TIME"
	AnomalyNewIP       AnomalyType = "NEW_IP_ADDRESS"
	AnomalyNewDevice   AnomalyType = "NEW_DEVICE"
	AnomalyNewLocation AnomalyType = "NEW_LOCATION"
)

// Severity grades an anomaly. It doubles as the aggregate risk level.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Weight is the severity's contribution to a user's risk score.
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 50
	case SeverityMedium:
		return 25
	case SeverityLow:
		return 10
	default:
		return 0
	}
}

// Risk level thresholds.
const (
	HighRiskScore   = 75
	MediumRiskScore = 35
	MaxRiskScore    = 100
)

// LevelForScore maps an aggregate score to a level.
func LevelForScore(score int) Severity {
	switch {
	case score >= HighRiskScore:
		return SeverityHigh
	case score >= MediumRiskScore:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Recommendation is a canned follow-up action for a risk level.
type Recommendation string

const (
	RecommendAdditionalVerification Recommendation = "require_additional_verification"
	RecommendReviewRecentActivity   Recommendation = "review_recent_activity"
	RecommendTemporaryLock          Recommendation = "consider_temporary_lock"
	RecommendEmailConfirmation      Recommendation = "require_email_confirmation"
	RecommendMonitor24h             Recommendation = "monitor_next_24h"
)

// RecommendationsFor returns the actions suggested at level. LOW has none.
func RecommendationsFor(level Severity) []Recommendation {
	switch level {
	case SeverityHigh:
		return []Recommendation{RecommendAdditionalVerification, RecommendReviewRecentActivity, RecommendTemporaryLock}
	case SeverityMedium:
		return []Recommendation{RecommendEmailConfirmation, RecommendMonitor24h}
	default:
		return []Recommendation{}
	}
}

// Anomaly is a rule verdict before it is logged.
type Anomaly struct {
	Type        AnomalyType
	Severity    Severity
	Confidence  float64
	Description string
}

// AnomalyEvent is a logged anomaly.
type AnomalyEvent struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        AnomalyType     `json:"type"`
	Severity    Severity        `json:"severity"`
	Confidence  float64         `json:"confidence"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
	Metadata    json.RawMessage `json:"metadata,omitempty"` // the triggering activity
}

// clone returns a copy that shares no memory with e.
func (e AnomalyEvent) clone() AnomalyEvent {
	e.Metadata = slices.Clone(e.Metadata)
	return e
}

// RiskAssessment is a user's aggregate risk over the risk window.
type RiskAssessment struct {
	UserID          string           `json:"user_id"`
	Score           int              `json:"score"` // 0-100
	Level           Severity         `json:"level"`
	RecentAnomalies []AnomalyEvent   `json:"recent_anomalies"`
	Recommendations []Recommendation `json:"recommendations"`
}

// UserAnomalyCount is one row of the top offenders list.
type UserAnomalyCount struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

// AnomalyStatistics aggregates the anomaly log.
type AnomalyStatistics struct {
	Total      int                `json:"total"`
	ByType     map[string]int     `json:"by_type"`
	BySeverity map[string]int     `json:"by_severity"`
	Last24h    int                `json:"last_24h"`
	TopUsers   []UserAnomalyCount `json:"top_users"`
}
