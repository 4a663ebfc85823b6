// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package cache

import "time"

// AgeEntry is one key tracked by an AgeHeap.
type AgeEntry struct {
	Key       string
	Timestamp time.Time
	index     int
}

// AgeHeap is a min-heap of keys ordered by timestamp, with a parallel map
// for O(1) lookup. It answers "which keys are older than t" in
// O(k log n) for k expired keys instead of scanning everything.
//
// Used by the device registry for age-based fingerprint eviction.
type AgeHeap struct {
	heap  []*AgeEntry
	byKey map[string]*AgeEntry
}

// NewAgeHeap creates an empty heap.
func NewAgeHeap() *AgeHeap {
	return &AgeHeap{byKey: make(map[string]*AgeEntry)}
}

// Set inserts key or moves an existing key to timestamp.
func (h *AgeHeap) Set(key string, timestamp time.Time) {
	if e, ok := h.byKey[key]; ok {
		e.Timestamp = timestamp
		h.fix(e.index)
		return
	}

	e := &AgeEntry{Key: key, Timestamp: timestamp, index: len(h.heap)}
	h.heap = append(h.heap, e)
	h.byKey[key] = e
	h.up(e.index)
}

// Remove drops key. Returns false if it was not tracked.
func (h *AgeHeap) Remove(key string) bool {
	e, ok := h.byKey[key]
	if !ok {
		return false
	}
	h.removeAt(e.index)
	return true
}

// Peek returns the oldest entry, or nil when empty.
func (h *AgeHeap) Peek() *AgeEntry {
	if len(h.heap) == 0 {
		return nil
	}
	return h.heap[0]
}

// PopBefore removes and returns every key whose timestamp is strictly
// before cutoff, oldest first.
func (h *AgeHeap) PopBefore(cutoff time.Time) []string {
	var keys []string
	for len(h.heap) > 0 && h.heap[0].Timestamp.Before(cutoff) {
		keys = append(keys, h.removeAt(0).Key)
	}
	return keys
}

// Len returns the number of tracked keys.
func (h *AgeHeap) Len() int { return len(h.heap) }

// Reset removes all keys.
func (h *AgeHeap) Reset() {
	h.heap = h.heap[:0]
	clear(h.byKey)
}

func (h *AgeHeap) removeAt(i int) *AgeEntry {
	n := len(h.heap) - 1
	e := h.heap[i]
	delete(h.byKey, e.Key)

	if i != n {
		h.heap[i] = h.heap[n]
		h.heap[i].index = i
	}
	h.heap[n] = nil
	h.heap = h.heap[:n]

	if i != n {
		h.fix(i)
	}
	return e
}

func (h *AgeHeap) fix(i int) {
	if !h.up(i) {
		h.down(i)
	}
}

func (h *AgeHeap) less(i, j int) bool {
	return h.heap[i].Timestamp.Before(h.heap[j].Timestamp)
}

func (h *AgeHeap) up(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

func (h *AgeHeap) down(i int) {
	n := len(h.heap)
	for {
		smallest := i
		if l := 2*i + 1; l < n && h.less(l, smallest) {
			smallest = l
		}
		if r := 2*i + 2; r < n && h.less(r, smallest) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

func (h *AgeHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.heap[i].index = i
	h.heap[j].index = j
}
