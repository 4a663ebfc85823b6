// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package behavior

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sentinel/internal/cache"
	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/metrics"
)

// Activity is one login observed for a user.
type Activity struct {
	LoginTime         time.Time `json:"login_time"`
	IPAddress         string    `json:"ip_address,omitempty"`
	DeviceFingerprint string    `json:"device_fingerprint,omitempty"`
	Location          string    `json:"location,omitempty"`
}

// Pattern is a point-in-time copy of a user's history. Slices are ordered
// oldest first.
type Pattern struct {
	UserID      string      `json:"user_id"`
	LoginTimes  []time.Time `json:"login_times"`
	IPAddresses []string    `json:"ip_addresses"`
	Devices     []string    `json:"devices"`
	Locations   []string    `json:"locations"`
	LastUpdated time.Time   `json:"last_updated"`
}

// StoreConfig sets the history capacities.
type StoreConfig struct {
	LoginHistorySize    int
	IPHistorySize       int
	DeviceHistorySize   int
	LocationHistorySize int

	// Clock returns the current time. Default: time.Now.
	Clock func() time.Time
}

// DefaultStoreConfig returns capacities of 100 logins, 20 IPs, 10 devices
// and 10 locations.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		LoginHistorySize:    100,
		IPHistorySize:       20,
		DeviceHistorySize:   10,
		LocationHistorySize: 10,
		Clock:               time.Now,
	}
}

type userPattern struct {
	loginTimes  *cache.Ring[time.Time]
	ips         *cache.DistinctRing[string]
	devices     *cache.DistinctRing[string]
	locations   *cache.DistinctRing[string]
	lastUpdated time.Time
}

func (p *userPattern) snapshot(userID string) Pattern {
	return Pattern{
		UserID:      userID,
		LoginTimes:  p.loginTimes.Values(),
		IPAddresses: p.ips.Values(),
		Devices:     p.devices.Values(),
		Locations:   p.locations.Values(),
		LastUpdated: p.lastUpdated,
	}
}

// Store holds one pattern per user. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	patterns map[string]*userPattern
	cfg      StoreConfig
	logger   zerolog.Logger
}

// NewStore creates an empty store. Non-positive capacities fall back to
// the defaults.
func NewStore(cfg StoreConfig) *Store {
	def := DefaultStoreConfig()
	if cfg.LoginHistorySize <= 0 {
		cfg.LoginHistorySize = def.LoginHistorySize
	}
	if cfg.IPHistorySize <= 0 {
		cfg.IPHistorySize = def.IPHistorySize
	}
	if cfg.DeviceHistorySize <= 0 {
		cfg.DeviceHistorySize = def.DeviceHistorySize
	}
	if cfg.LocationHistorySize <= 0 {
		cfg.LocationHistorySize = def.LocationHistorySize
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Store{
		patterns: make(map[string]*userPattern),
		cfg:      cfg,
		logger:   logging.WithComponent("behavior"),
	}
}

func (s *Store) newPattern() *userPattern {
	return &userPattern{
		loginTimes: cache.NewRing[time.Time](s.cfg.LoginHistorySize),
		ips:        cache.NewDistinctRing[string](s.cfg.IPHistorySize),
		devices:    cache.NewDistinctRing[string](s.cfg.DeviceHistorySize),
		locations:  cache.NewDistinctRing[string](s.cfg.LocationHistorySize),
	}
}

// Update absorbs activity into userID's pattern, creating it on first use.
// A zero LoginTime is recorded as now. Empty IP, device and location values
// are missing signals and are not stored.
func (s *Store) Update(userID string, activity Activity) {
	now := s.cfg.Clock()
	loginTime := activity.LoginTime
	if loginTime.IsZero() {
		loginTime = now
	}

	s.mu.Lock()
	p, ok := s.patterns[userID]
	if !ok {
		p = s.newPattern()
		s.patterns[userID] = p
	}

	p.loginTimes.Push(loginTime)
	if activity.IPAddress != "" {
		p.ips.Add(activity.IPAddress)
	}
	if activity.DeviceFingerprint != "" {
		p.devices.Add(activity.DeviceFingerprint)
	}
	if activity.Location != "" {
		p.locations.Add(activity.Location)
	}
	p.lastUpdated = now
	n := len(s.patterns)
	s.mu.Unlock()

	if !ok {
		s.logger.Debug().Str("user_id", logging.SanitizeUserID(userID)).Msg("Behavior pattern created")
		metrics.SetBehaviorPatterns(n)
	}
}

// Pattern returns a copy of userID's pattern.
func (s *Store) Pattern(userID string) (Pattern, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patterns[userID]
	if !ok {
		return Pattern{}, false
	}
	return p.snapshot(userID), true
}

// Reset deletes userID's pattern. The next Update starts from a cold start.
func (s *Store) Reset(userID string) bool {
	s.mu.Lock()
	_, ok := s.patterns[userID]
	delete(s.patterns, userID)
	n := len(s.patterns)
	s.mu.Unlock()

	if ok {
		metrics.SetBehaviorPatterns(n)
	}
	return ok
}

// ExpireStale deletes patterns whose last update is strictly older than
// now-ttl and returns how many were removed. A non-positive ttl disables
// expiry.
func (s *Store) ExpireStale(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	cutoff := s.cfg.Clock().Add(-ttl)
	removed := 0
	for userID, p := range s.patterns {
		if p.lastUpdated.Before(cutoff) {
			delete(s.patterns, userID)
			removed++
		}
	}
	n := len(s.patterns)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Dur("ttl", ttl).Msg("Expired stale behavior patterns")
		metrics.SetBehaviorPatterns(n)
	}
	return removed
}

// Len returns the number of users with a pattern.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns)
}
