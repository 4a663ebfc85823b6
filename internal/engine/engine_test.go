// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/sentinel/internal/behavior"
	"github.com/tomtom215/sentinel/internal/config"
	"github.com/tomtom215/sentinel/internal/detection"
	"github.com/tomtom215/sentinel/internal/fingerprint"
	"github.com/tomtom215/sentinel/internal/validation"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestEngine(clock *fakeClock) *Engine {
	cfg := DefaultConfig()
	cfg.Processor.Salt = "test-salt"
	return New(cfg, WithClock(clock.Now))
}

func desktopChrome() *fingerprint.RawFingerprint {
	return &fingerprint.RawFingerprint{
		UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ScreenResolution:    "1920x1080",
		Timezone:            "Europe/Berlin",
		Language:            "de-DE",
		Platform:            "Win32",
		ColorDepth:          24,
		HardwareConcurrency: 8,
		Canvas:              "canvas-hash",
		WebGL:               "webgl-hash",
		Fonts:               []string{"Arial", "Calibri"},
		Plugins:             []string{"PDF Viewer"},
		CookieEnabled:       true,
	}
}

func TestEngine_FingerprintOperations(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	fp := e.Process(desktopChrome())
	if fp.Hash == "" {
		t.Fatal("empty hash")
	}
	if !fp.CreatedAt.Equal(clock.Now()) {
		t.Errorf("CreatedAt = %v, want injected clock %v", fp.CreatedAt, clock.Now())
	}
	if got, ok := e.Fingerprint(fp.Hash); !ok || got.Hash != fp.Hash {
		t.Fatalf("Fingerprint(%q) = %v, %v", fp.Hash, got, ok)
	}

	cmp := e.CompareFingerprints(fp.Hash, fp.Hash)
	if cmp.Similarity != 1 || !cmp.IsSameDevice {
		t.Errorf("self comparison = %+v", cmp)
	}

	e.MarkSuspicious(fp.Hash, "chargeback")
	if !e.IsSuspicious(fp.Hash) {
		t.Error("hash not suspicious after MarkSuspicious")
	}
	if s, ok := e.SuspicionReason(fp.Hash); !ok || s.Reason != "chargeback" {
		t.Errorf("SuspicionReason = %+v, %v", s, ok)
	}

	stats := e.DeviceStatistics()
	if stats.Total != 1 || stats.Suspicious != 1 || stats.ByDeviceType["desktop"] != 1 {
		t.Errorf("DeviceStatistics = %+v", stats)
	}
}

func TestEngine_Isolation(t *testing.T) {
	clock := newFakeClock()
	a := newTestEngine(clock)
	b := newTestEngine(clock)

	fp := a.Process(desktopChrome())
	a.MarkSuspicious(fp.Hash, "test")
	a.Update("alice", behavior.Activity{IPAddress: "10.0.0.1"})

	if _, ok := b.Fingerprint(fp.Hash); ok {
		t.Error("fingerprint leaked across engines")
	}
	if b.IsSuspicious(fp.Hash) {
		t.Error("suspicion leaked across engines")
	}
	if _, ok := b.Pattern("alice"); ok {
		t.Error("pattern leaked across engines")
	}
}

func TestEngine_DetectThenUpdate(t *testing.T) {
	e := newTestEngine(newFakeClock())

	if got := e.DetectAnomalies("bob", behavior.Activity{IPAddress: "10.0.0.1"}); len(got) != 0 {
		t.Fatalf("cold start returned %v", got)
	}
	e.Update("bob", behavior.Activity{IPAddress: "10.0.0.1"})

	got := e.DetectAnomalies("bob", behavior.Activity{IPAddress: "10.0.0.2"})
	if len(got) != 1 || got[0].Type != detection.AnomalyNewIP {
		t.Fatalf("DetectAnomalies = %v, want NEW_IP_ADDRESS", got)
	}
}

func TestAssessLogin(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	first, err := e.AssessLogin(LoginAttempt{
		UserID:   "carol",
		Activity: behavior.Activity{IPAddress: "10.0.0.1", DeviceFingerprint: "dev-a", Location: "Oslo, NO"},
	})
	if err != nil {
		t.Fatalf("AssessLogin: %v", err)
	}
	if len(first.Anomalies) != 0 || first.Risk.Level != detection.SeverityLow {
		t.Errorf("first login = %+v, want clean cold start", first)
	}
	if _, ok := e.Pattern("carol"); !ok {
		t.Fatal("baseline not created")
	}

	second, err := e.AssessLogin(LoginAttempt{
		UserID:   "carol",
		Activity: behavior.Activity{IPAddress: "10.0.0.2", DeviceFingerprint: "dev-b", Location: "Lagos, NG"},
	})
	if err != nil {
		t.Fatalf("AssessLogin: %v", err)
	}
	if len(second.Anomalies) != 3 {
		t.Fatalf("second login anomalies = %v, want 3", second.Anomalies)
	}
	// MEDIUM + HIGH + MEDIUM = 100.
	if second.Risk.Score != 100 || second.Risk.Level != detection.SeverityHigh {
		t.Errorf("risk = %d %s, want 100 HIGH", second.Risk.Score, second.Risk.Level)
	}
	if len(second.Risk.Recommendations) != 3 {
		t.Errorf("recommendations = %v", second.Risk.Recommendations)
	}

	// The same values again are now part of the baseline.
	third, err := e.AssessLogin(LoginAttempt{
		UserID:   "carol",
		Activity: behavior.Activity{IPAddress: "10.0.0.2", DeviceFingerprint: "dev-b", Location: "Lagos, NG"},
	})
	if err != nil {
		t.Fatalf("AssessLogin: %v", err)
	}
	if len(third.Anomalies) != 0 {
		t.Errorf("repeat login anomalies = %v", third.Anomalies)
	}
}

func TestAssessLogin_Invalid(t *testing.T) {
	e := newTestEngine(newFakeClock())

	_, err := e.AssessLogin(LoginAttempt{})
	if err == nil {
		t.Fatal("expected error for missing user ID")
	}
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("error %T is not a *validation.Error", err)
	}
	if verr.Fields[0].Field != "user_id" {
		t.Errorf("field = %q, want user_id", verr.Fields[0].Field)
	}
	if e.Summary().Patterns != 0 {
		t.Error("invalid attempt created a pattern")
	}
}

func TestAssessLogin_Concurrent(t *testing.T) {
	e := newTestEngine(newFakeClock())
	e.Update("dave", behavior.Activity{IPAddress: "10.0.0.1"})

	// Every goroutine submits the same new IP; exactly one may see it as new.
	var wg sync.WaitGroup
	var mu sync.Mutex
	flagged := 0
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.AssessLogin(LoginAttempt{UserID: "dave", Activity: behavior.Activity{IPAddress: "10.9.9.9"}})
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			flagged += len(res.Anomalies)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if flagged != 1 {
		t.Errorf("NEW_IP_ADDRESS raised %d times, want 1", flagged)
	}
}

func TestResetPattern(t *testing.T) {
	e := newTestEngine(newFakeClock())
	e.Update("erin", behavior.Activity{IPAddress: "10.0.0.1"})

	if !e.ResetPattern("erin") {
		t.Fatal("ResetPattern returned false")
	}
	if e.ResetPattern("erin") {
		t.Error("second ResetPattern returned true")
	}
	if got := e.DetectAnomalies("erin", behavior.Activity{IPAddress: "10.0.0.2"}); len(got) != 0 {
		t.Errorf("reset user should be a cold start, got %v", got)
	}
}

func TestRunMaintenance(t *testing.T) {
	clock := newFakeClock()
	cfg := DefaultConfig()
	cfg.Processor.Salt = "test-salt"
	cfg.Maintenance = MaintenanceConfig{
		Interval:          time.Hour,
		FingerprintMaxAge: 48 * time.Hour,
		AnomalyMaxAge:     24 * time.Hour,
		PatternTTL:        72 * time.Hour,
	}
	e := New(cfg, WithClock(clock.Now))

	e.Process(desktopChrome())
	e.Update("frank", behavior.Activity{IPAddress: "10.0.0.1"})
	e.DetectAnomalies("frank", behavior.Activity{IPAddress: "10.0.0.2"})

	clock.Advance(30 * time.Hour)
	r := e.RunMaintenance()
	if r.Fingerprints != 0 || r.Anomalies != 1 || r.Patterns != 0 {
		t.Errorf("after 30h: %+v, want only the anomaly removed", r)
	}

	clock.Advance(20 * time.Hour)
	r = e.RunMaintenance()
	if r.Fingerprints != 1 || r.Patterns != 0 {
		t.Errorf("after 50h: %+v, want the fingerprint removed", r)
	}

	clock.Advance(30 * time.Hour)
	r = e.RunMaintenance()
	if r.Patterns != 1 {
		t.Errorf("after 80h: %+v, want the pattern expired", r)
	}

	if s := e.Summary(); s != (Summary{}) {
		t.Errorf("Summary = %+v, want empty", s)
	}
}

func TestRunMaintenance_NoPatternTTL(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)
	e.Update("gina", behavior.Activity{})

	clock.Advance(365 * 24 * time.Hour)
	if r := e.RunMaintenance(); r.Patterns != 0 {
		t.Errorf("patterns expired without a TTL: %+v", r)
	}
}

func TestRunWithContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Processor.Salt = "test-salt"
	cfg.Maintenance.Interval = 5 * time.Millisecond
	e := New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.RunWithContext(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RunWithContext() = %v, want context.DeadlineExceeded", err)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Fingerprint.Salt = "configured"
	cfg.Detection.Timezone = "Asia/Tokyo"
	cfg.Behavior.DeviceHistorySize = 2

	ec, err := ConfigFrom(cfg)
	if err != nil {
		t.Fatalf("ConfigFrom: %v", err)
	}
	if ec.Detection.Location.String() != "Asia/Tokyo" {
		t.Errorf("Location = %v", ec.Detection.Location)
	}
	if ec.Processor.Salt != "configured" || ec.Behavior.DeviceHistorySize != 2 {
		t.Errorf("ConfigFrom = %+v", ec)
	}

	e, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	for i := range 3 {
		e.Update("hank", behavior.Activity{DeviceFingerprint: fmt.Sprintf("dev-%d", i)})
	}
	p, _ := e.Pattern("hank")
	if len(p.Devices) != 2 || p.Devices[0] != "dev-1" {
		t.Errorf("Devices = %v, want [dev-1 dev-2]", p.Devices)
	}

	cfg.Detection.Timezone = "Nowhere/Special"
	if _, err := NewFromConfig(cfg); !errors.Is(err, config.ErrInvalidTimezone) {
		t.Errorf("NewFromConfig() error = %v, want ErrInvalidTimezone", err)
	}
}

func TestWithClassifier(t *testing.T) {
	classifier := fingerprint.ClassifierFunc(func(string) fingerprint.Classification {
		return fingerprint.Classification{
			DeviceType:     fingerprint.DeviceTypeTablet,
			BrowserFamily:  "Custom",
			BrowserVersion: "1",
			OSFamily:       "CustomOS",
			OSVersion:      "2",
		}
	})
	cfg := DefaultConfig()
	cfg.Processor.Salt = "test-salt"
	e := New(cfg, WithClassifier(classifier))

	fp := e.Process(desktopChrome())
	if fp.DeviceType != fingerprint.DeviceTypeTablet || fp.BrowserFamily != "Custom" {
		t.Errorf("classifier not used: %+v", fp)
	}
}
