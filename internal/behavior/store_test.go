// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package behavior

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(clock *fakeClock) *Store {
	cfg := DefaultStoreConfig()
	cfg.Clock = clock.Now
	return NewStore(cfg)
}

func TestStore_LazyCreation(t *testing.T) {
	s := newTestStore(&fakeClock{t: base})

	_, ok := s.Pattern("alice")
	assert.False(t, ok)
	assert.Zero(t, s.Len())

	s.Update("alice", Activity{LoginTime: base, IPAddress: "10.0.0.1", DeviceFingerprint: "d1", Location: "Berlin"})

	p, ok := s.Pattern("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", p.UserID)
	assert.Equal(t, []time.Time{base}, p.LoginTimes)
	assert.Equal(t, []string{"10.0.0.1"}, p.IPAddresses)
	assert.Equal(t, []string{"d1"}, p.Devices)
	assert.Equal(t, []string{"Berlin"}, p.Locations)
	assert.Equal(t, base, p.LastUpdated)
	assert.Equal(t, 1, s.Len())
}

func TestStore_LoginHistoryKeepsMostRecent100(t *testing.T) {
	s := newTestStore(&fakeClock{t: base})

	for i := 0; i < 101; i++ {
		s.Update("alice", Activity{LoginTime: base.Add(time.Duration(i) * time.Minute)})
	}

	p, _ := s.Pattern("alice")
	require.Len(t, p.LoginTimes, 100)
	assert.Equal(t, base.Add(time.Minute), p.LoginTimes[0], "oldest entry evicted")
	assert.Equal(t, base.Add(100*time.Minute), p.LoginTimes[99])
}

func TestStore_DistinctHistories(t *testing.T) {
	s := newTestStore(&fakeClock{t: base})

	for i := 0; i < 25; i++ {
		s.Update("alice", Activity{
			LoginTime:         base,
			IPAddress:         fmt.Sprintf("10.0.0.%d", i),
			DeviceFingerprint: fmt.Sprintf("dev-%d", i),
			Location:          fmt.Sprintf("city-%d", i),
		})
		// Repeats must not consume capacity.
		s.Update("alice", Activity{LoginTime: base, IPAddress: fmt.Sprintf("10.0.0.%d", i)})
	}

	p, _ := s.Pattern("alice")
	require.Len(t, p.IPAddresses, 20)
	assert.Equal(t, "10.0.0.5", p.IPAddresses[0])
	assert.Equal(t, "10.0.0.24", p.IPAddresses[19])
	require.Len(t, p.Devices, 10)
	assert.Equal(t, "dev-15", p.Devices[0])
	require.Len(t, p.Locations, 10)
	assert.Equal(t, "city-24", p.Locations[9])
}

func TestStore_DuplicateDoesNotRefreshPosition(t *testing.T) {
	cfg := DefaultStoreConfig()
	cfg.IPHistorySize = 2
	s := NewStore(cfg)

	s.Update("u", Activity{IPAddress: "a"})
	s.Update("u", Activity{IPAddress: "b"})
	s.Update("u", Activity{IPAddress: "a"})
	s.Update("u", Activity{IPAddress: "c"})

	p, _ := s.Pattern("u")
	assert.Equal(t, []string{"b", "c"}, p.IPAddresses)
}

func TestStore_EmptySignalsNotStored(t *testing.T) {
	clock := &fakeClock{t: base}
	s := newTestStore(clock)

	s.Update("alice", Activity{})

	p, _ := s.Pattern("alice")
	assert.Equal(t, []time.Time{base}, p.LoginTimes, "zero login time recorded as now")
	assert.Empty(t, p.IPAddresses)
	assert.Empty(t, p.Devices)
	assert.Empty(t, p.Locations)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := newTestStore(&fakeClock{t: base})
	s.Update("alice", Activity{IPAddress: "10.0.0.1"})

	p, _ := s.Pattern("alice")
	p.IPAddresses[0] = "tampered"

	again, _ := s.Pattern("alice")
	assert.Equal(t, "10.0.0.1", again.IPAddresses[0])
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore(&fakeClock{t: base})
	s.Update("alice", Activity{IPAddress: "10.0.0.1"})

	assert.True(t, s.Reset("alice"))
	assert.False(t, s.Reset("alice"))
	_, ok := s.Pattern("alice")
	assert.False(t, ok)
}

func TestStore_ExpireStale(t *testing.T) {
	clock := &fakeClock{t: base}
	s := newTestStore(clock)

	s.Update("old", Activity{})
	clock.Advance(2 * time.Hour)
	s.Update("fresh", Activity{})
	clock.Advance(time.Hour)

	assert.Zero(t, s.ExpireStale(0), "non-positive ttl disables expiry")
	assert.Equal(t, 1, s.ExpireStale(2*time.Hour))

	_, ok := s.Pattern("old")
	assert.False(t, ok)
	_, ok = s.Pattern("fresh")
	assert.True(t, ok)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := NewStore(DefaultStoreConfig())

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", w%4)
			for i := 0; i < 200; i++ {
				s.Update(user, Activity{IPAddress: fmt.Sprintf("10.%d.0.%d", w, i%30)})
				_, _ = s.Pattern(user)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 4, s.Len())
	p, _ := s.Pattern("user-0")
	assert.Len(t, p.LoginTimes, 100)
	assert.Len(t, p.IPAddresses, 20)
}
