// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package detection

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sentinel/internal/behavior"
	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/metrics"
)

// DefaultMaxAge is the retention used by ClearOldAnomalies when called
// with a non-positive maxAge.
const DefaultMaxAge = 7 * 24 * time.Hour

const (
	statisticsWindow = 24 * time.Hour
	topUsersLimit    = 10
)

// PatternSource supplies the behavioral baseline for a user.
type PatternSource interface {
	Pattern(userID string) (behavior.Pattern, bool)
}

// Config configures a Detector.
type Config struct {
	// Location is the timezone login hours are bucketed in. Default: UTC.
	Location *time.Location

	// MinLoginHistory is the number of prior logins required before
	// unusual-time detection applies.
	MinLoginHistory int

	// UnusualHourThreshold is the share of history below which an hour
	// is unusual.
	UnusualHourThreshold float64

	// RiskWindow bounds the anomalies counted by UserRiskScore.
	RiskWindow time.Duration

	// Clock returns the current time. Default: time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{
		Location:             time.UTC,
		MinLoginHistory:      5,
		UnusualHourThreshold: 0.05,
		RiskWindow:           24 * time.Hour,
		Clock:                time.Now,
	}
}

// Detector compares login activity against behavioral baselines and keeps
// a log of every anomaly it reports. It is safe for concurrent use.
type Detector struct {
	mu  sync.RWMutex
	log []AnomalyEvent

	rules    []Rule
	patterns PatternSource
	window   time.Duration
	now      func() time.Time
	logger   zerolog.Logger
	security *logging.SecurityLogger
}

// NewDetector creates a detector reading baselines from patterns.
// Zero config fields fall back to DefaultConfig.
func NewDetector(cfg Config, patterns PatternSource) *Detector {
	def := DefaultConfig()
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cfg.MinLoginHistory <= 0 {
		cfg.MinLoginHistory = def.MinLoginHistory
	}
	if cfg.UnusualHourThreshold <= 0 {
		cfg.UnusualHourThreshold = def.UnusualHourThreshold
	}
	if cfg.RiskWindow <= 0 {
		cfg.RiskWindow = def.RiskWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Detector{
		rules: []Rule{
			&UnusualTimeRule{
				Location:   cfg.Location,
				MinHistory: cfg.MinLoginHistory,
				Threshold:  cfg.UnusualHourThreshold,
			},
			NewIPRule{},
			NewDeviceRule{},
			NewLocationRule{},
		},
		patterns: patterns,
		window:   cfg.RiskWindow,
		now:      cfg.Clock,
		logger:   logging.WithComponent("detector"),
		security: logging.NewSecurityLogger(),
	}
}

// DetectAnomalies evaluates activity against userID's current baseline and
// appends every anomaly found to the log. Users without a baseline get an
// empty result.
//
// Call it before the activity is absorbed into the baseline; afterwards the
// activity's IP, device and location are already known.
func (d *Detector) DetectAnomalies(userID string, activity behavior.Activity) []AnomalyEvent {
	pattern, ok := d.patterns.Pattern(userID)
	if !ok {
		return []AnomalyEvent{}
	}

	now := d.now()
	loginTime := activity.LoginTime
	if loginTime.IsZero() {
		loginTime = now
	}

	var found []Anomaly
	for _, rule := range d.rules {
		if a, hit := rule.Evaluate(&pattern, activity, loginTime); hit {
			found = append(found, a)
		}
	}
	if len(found) == 0 {
		return []AnomalyEvent{}
	}

	metadata, err := json.Marshal(activity)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Failed to encode anomaly metadata")
		metadata = nil
	}

	events := make([]AnomalyEvent, 0, len(found))
	types := make([]string, 0, len(found))
	for _, a := range found {
		events = append(events, AnomalyEvent{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        a.Type,
			Severity:    a.Severity,
			Confidence:  a.Confidence,
			Description: a.Description,
			Timestamp:   now,
			Metadata:    slices.Clone(metadata),
		})
		types = append(types, string(a.Type))
	}

	d.mu.Lock()
	for _, e := range events {
		d.log = append(d.log, e.clone())
	}
	size := len(d.log)
	d.mu.Unlock()

	for _, e := range events {
		metrics.RecordAnomaly(string(e.Type), string(e.Severity))
	}
	metrics.SetAnomalyLogSize(size)
	d.security.LogAnomalies(userID, activity.IPAddress, types)

	return events
}

// UserRiskScore aggregates userID's anomalies inside the risk window.
func (d *Detector) UserRiskScore(userID string) RiskAssessment {
	cutoff := d.now().Add(-d.window)

	d.mu.RLock()
	recent := []AnomalyEvent{}
	for _, e := range d.log {
		if e.UserID == userID && !e.Timestamp.Before(cutoff) {
			recent = append(recent, e.clone())
		}
	}
	d.mu.RUnlock()

	score := 0
	for _, e := range recent {
		score += e.Severity.Weight()
	}
	score = min(score, MaxRiskScore)
	level := LevelForScore(score)

	return RiskAssessment{
		UserID:          userID,
		Score:           score,
		Level:           level,
		RecentAnomalies: recent,
		Recommendations: RecommendationsFor(level),
	}
}

// Statistics aggregates the whole anomaly log.
func (d *Detector) Statistics() AnomalyStatistics {
	cutoff := d.now().Add(-statisticsWindow)

	d.mu.RLock()
	stats := AnomalyStatistics{
		Total:      len(d.log),
		ByType:     make(map[string]int),
		BySeverity: make(map[string]int),
	}
	perUser := make(map[string]int)
	for _, e := range d.log {
		stats.ByType[string(e.Type)]++
		stats.BySeverity[string(e.Severity)]++
		perUser[e.UserID]++
		if !e.Timestamp.Before(cutoff) {
			stats.Last24h++
		}
	}
	d.mu.RUnlock()

	stats.TopUsers = topUsers(perUser, topUsersLimit)
	return stats
}

func topUsers(counts map[string]int, limit int) []UserAnomalyCount {
	rows := make([]UserAnomalyCount, 0, len(counts))
	for userID, n := range counts {
		rows = append(rows, UserAnomalyCount{UserID: userID, Count: n})
	}
	slices.SortFunc(rows, func(a, b UserAnomalyCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// ClearOldAnomalies removes log entries strictly older than now-maxAge and
// returns how many were removed. A non-positive maxAge means DefaultMaxAge.
func (d *Detector) ClearOldAnomalies(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	d.mu.Lock()
	cutoff := d.now().Add(-maxAge)
	before := len(d.log)
	d.log = slices.DeleteFunc(d.log, func(e AnomalyEvent) bool {
		return e.Timestamp.Before(cutoff)
	})
	removed := before - len(d.log)
	size := len(d.log)
	d.mu.Unlock()

	if removed > 0 {
		d.logger.Debug().Int("removed", removed).Time("cutoff", cutoff).Msg("Cleared old anomalies")
	}
	metrics.SetAnomalyLogSize(size)
	return removed
}

// Len returns the number of logged anomalies.
func (d *Detector) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.log)
}
