// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package fingerprint

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sentinel/internal/cache"
	"github.com/tomtom215/sentinel/internal/logging"
	"github.com/tomtom215/sentinel/internal/metrics"
)

// DefaultSameDeviceThreshold is the similarity a comparison must exceed to
// report the same device. Over three equally weighted attributes only a full
// match (1.0) exceeds it.
const DefaultSameDeviceThreshold = 0.8

// DefaultMaxAge is the retention used by CleanupOldFingerprints when
// called with a non-positive maxAge.
const DefaultMaxAge = 30 * 24 * time.Hour

// ErrUnknownFingerprint is reported when a hash is not in the registry.
var ErrUnknownFingerprint = errors.New("fingerprint not registered")

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// SameDeviceThreshold: similarity must be strictly greater to match.
	SameDeviceThreshold float64

	// Clock returns the current time. Default: time.Now.
	Clock func() time.Time
}

// DefaultRegistryConfig returns the default registry configuration.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		SameDeviceThreshold: DefaultSameDeviceThreshold,
		Clock:               time.Now,
	}
}

// Registry stores processed fingerprints by hash together with an
// independent set of suspicious hashes. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]ProcessedFingerprint
	ages       *cache.AgeHeap
	suspicious map[string]Suspicion

	threshold float64
	now       func() time.Time
	logger    zerolog.Logger
	security  *logging.SecurityLogger
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.SameDeviceThreshold <= 0 {
		cfg.SameDeviceThreshold = DefaultSameDeviceThreshold
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Registry{
		entries:    make(map[string]ProcessedFingerprint),
		ages:       cache.NewAgeHeap(),
		suspicious: make(map[string]Suspicion),
		threshold:  cfg.SameDeviceThreshold,
		now:        cfg.Clock,
		logger:     logging.WithComponent("registry"),
		security:   logging.NewSecurityLogger(),
	}
}

// Put stores fp under fp.Hash, replacing any previous entry.
func (r *Registry) Put(fp ProcessedFingerprint) {
	r.mu.Lock()
	r.entries[fp.Hash] = fp
	r.ages.Set(fp.Hash, fp.CreatedAt)
	total, suspicious := len(r.entries), len(r.suspicious)
	r.mu.Unlock()

	metrics.SetRegistrySize(total, suspicious)
}

// Get returns the fingerprint stored under hash.
func (r *Registry) Get(hash string) (ProcessedFingerprint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fp, ok := r.entries[hash]
	return fp, ok
}

// Len returns the number of stored fingerprints.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// MarkSuspicious flags hash. The hash need not be registered, and marks
// never expire. Marking again replaces the reason.
func (r *Registry) MarkSuspicious(hash, reason string) {
	r.mu.Lock()
	r.suspicious[hash] = Suspicion{Reason: reason, MarkedAt: r.now()}
	total, suspicious := len(r.entries), len(r.suspicious)
	r.mu.Unlock()

	r.security.LogSuspiciousMarked(hash, reason)
	metrics.SetRegistrySize(total, suspicious)
}

// IsSuspicious reports whether hash has been marked.
func (r *Registry) IsSuspicious(hash string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.suspicious[hash]
	return ok
}

// SuspicionReason returns the mark recorded for hash.
func (r *Registry) SuspicionReason(hash string) (Suspicion, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suspicious[hash]
	return s, ok
}

// SuspiciousCount returns the size of the suspicious set.
func (r *Registry) SuspiciousCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suspicious)
}

// CompareFingerprints compares device type, browser family and OS family of
// two registered fingerprints. An unregistered hash yields a zero result
// with a note, never an error.
func (r *Registry) CompareFingerprints(hashA, hashB string) Comparison {
	r.mu.RLock()
	a, okA := r.entries[hashA]
	b, okB := r.entries[hashB]
	r.mu.RUnlock()

	if !okA || !okB {
		missing := hashA
		if okA {
			missing = hashB
		}
		return Comparison{
			ChangedComponents: []string{},
			Note:              fmt.Sprintf("%v: %s", ErrUnknownFingerprint, logging.SanitizeHash(missing)),
		}
	}

	type attribute struct {
		name     string
		from, to string
	}
	attrs := [...]attribute{
		{"device type", string(a.DeviceType), string(b.DeviceType)},
		{"browser", a.BrowserFamily, b.BrowserFamily},
		{"os", a.OSFamily, b.OSFamily},
	}

	matches := 0
	changed := []string{}
	for _, attr := range attrs {
		if attr.from == attr.to {
			matches++
			continue
		}
		changed = append(changed, fmt.Sprintf("%s changed from %s to %s", attr.name, attr.from, attr.to))
	}

	similarity := float64(matches) / float64(len(attrs))
	return Comparison{
		Similarity:        similarity,
		IsSameDevice:      similarity > r.threshold,
		ChangedComponents: changed,
	}
}

// Statistics aggregates the fingerprints currently retained.
func (r *Registry) Statistics() DeviceStatistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := DeviceStatistics{
		Total:        len(r.entries),
		ByDeviceType: make(map[string]int),
		ByBrowser:    make(map[string]int),
		ByOS:         make(map[string]int),
		Suspicious:   len(r.suspicious),
	}

	riskSum := 0
	for _, fp := range r.entries {
		stats.ByDeviceType[string(fp.DeviceType)]++
		stats.ByBrowser[fp.BrowserFamily]++
		stats.ByOS[fp.OSFamily]++
		riskSum += fp.RiskScore
	}
	if stats.Total > 0 {
		stats.AverageRiskScore = float64(riskSum) / float64(stats.Total)
	}
	return stats
}

// CleanupOldFingerprints removes entries created strictly before
// now-maxAge and returns how many were removed. Suspicion marks are kept.
// A non-positive maxAge means DefaultMaxAge.
func (r *Registry) CleanupOldFingerprints(maxAge time.Duration) int {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	r.mu.Lock()
	cutoff := r.now().Add(-maxAge)
	expired := r.ages.PopBefore(cutoff)
	for _, hash := range expired {
		delete(r.entries, hash)
	}
	total, suspicious := len(r.entries), len(r.suspicious)
	r.mu.Unlock()

	if len(expired) > 0 {
		r.logger.Debug().
			Int("removed", len(expired)).
			Time("cutoff", cutoff).
			Msg("Evicted old fingerprints")
	}
	metrics.SetRegistrySize(total, suspicious)
	return len(expired)
}
