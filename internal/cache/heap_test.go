// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package cache

import (
	"fmt"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAgeHeap_PeekReturnsOldest(t *testing.T) {
	h := NewAgeHeap()
	h.Set("c", epoch.Add(3*time.Second))
	h.Set("a", epoch.Add(1*time.Second))
	h.Set("b", epoch.Add(2*time.Second))

	if h.Len() != 3 {
		t.Fatalf("Expected len 3, got %d", h.Len())
	}
	if got := h.Peek(); got == nil || got.Key != "a" {
		t.Errorf("Expected peek to return 'a', got %v", got)
	}
}

func TestAgeHeap_SetMovesExistingKey(t *testing.T) {
	h := NewAgeHeap()
	h.Set("a", epoch)
	h.Set("b", epoch.Add(time.Hour))

	// Refreshing "a" makes "b" the oldest.
	h.Set("a", epoch.Add(2*time.Hour))

	if h.Len() != 2 {
		t.Fatalf("Expected len 2 after update, got %d", h.Len())
	}
	if got := h.Peek(); got.Key != "b" {
		t.Errorf("Expected 'b' to be oldest, got %q", got.Key)
	}
}

func TestAgeHeap_PopBeforeIsStrict(t *testing.T) {
	h := NewAgeHeap()
	h.Set("old", epoch)
	h.Set("boundary", epoch.Add(time.Hour))
	h.Set("new", epoch.Add(2*time.Hour))

	got := h.PopBefore(epoch.Add(time.Hour))

	if len(got) != 1 || got[0] != "old" {
		t.Fatalf("Expected [old], got %v", got)
	}
	if h.Len() != 2 {
		t.Errorf("Expected 2 remaining, got %d", h.Len())
	}
}

func TestAgeHeap_PopBeforeOrdersOldestFirst(t *testing.T) {
	h := NewAgeHeap()
	for i := 9; i >= 0; i-- {
		h.Set(fmt.Sprintf("k%d", i), epoch.Add(time.Duration(i)*time.Minute))
	}

	got := h.PopBefore(epoch.Add(5 * time.Minute))

	want := []string{"k0", "k1", "k2", "k3", "k4"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAgeHeap_Remove(t *testing.T) {
	h := NewAgeHeap()
	h.Set("a", epoch)
	h.Set("b", epoch.Add(time.Minute))
	h.Set("c", epoch.Add(2*time.Minute))

	if !h.Remove("a") {
		t.Fatal("Expected Remove to report true for tracked key")
	}
	if h.Remove("a") {
		t.Error("Expected Remove to report false for removed key")
	}
	if got := h.Peek(); got.Key != "b" {
		t.Errorf("Expected 'b' after removing oldest, got %q", got.Key)
	}
}

func TestAgeHeap_Reset(t *testing.T) {
	h := NewAgeHeap()
	h.Set("a", epoch)
	h.Reset()

	if h.Len() != 0 || h.Peek() != nil {
		t.Error("Expected empty heap after Reset")
	}
	h.Set("a", epoch)
	if h.Len() != 1 {
		t.Error("Expected heap to be reusable after Reset")
	}
}
