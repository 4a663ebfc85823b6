// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package cache

// Ring is a fixed-capacity FIFO buffer. Pushing onto a full ring overwrites
// the oldest element in O(1).
//
// Example:
//
//	r := cache.NewRing[int](3)
//	r.Push(1); r.Push(2); r.Push(3); r.Push(4)
//	r.Values() // [2 3 4]
type Ring[T any] struct {
	buf   []T
	start int // index of the oldest element
	size  int
}

// NewRing creates a ring holding at most capacity elements.
// A non-positive capacity is treated as 1.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v. If the ring is full the oldest element is evicted and
// returned with evicted=true.
func (r *Ring[T]) Push(v T) (old T, evicted bool) {
	capacity := len(r.buf)
	if r.size < capacity {
		r.buf[(r.start+r.size)%capacity] = v
		r.size++
		return old, false
	}

	old = r.buf[r.start]
	r.buf[r.start] = v
	r.start = (r.start + 1) % capacity
	return old, true
}

// Len returns the number of stored elements.
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the maximum number of elements.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// At returns the i-th element counting from the oldest.
// It panics if i is out of range, like a slice index.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("cache: ring index out of range")
	}
	return r.buf[(r.start+i)%len(r.buf)]
}

// Values returns a copy of the contents ordered oldest to newest.
func (r *Ring[T]) Values() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Do calls fn for each element from oldest to newest.
func (r *Ring[T]) Do(fn func(T)) {
	for i := 0; i < r.size; i++ {
		fn(r.buf[(r.start+i)%len(r.buf)])
	}
}

// Reset removes all elements without releasing the backing array.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.start = 0
	r.size = 0
}

// DistinctRing is a Ring that ignores values already present.
// Membership checks are O(1) via a set index kept in step with the ring.
type DistinctRing[T comparable] struct {
	ring  *Ring[T]
	index map[T]struct{}
}

// NewDistinctRing creates a distinct ring holding at most capacity elements.
func NewDistinctRing[T comparable](capacity int) *DistinctRing[T] {
	r := NewRing[T](capacity)
	return &DistinctRing[T]{
		ring:  r,
		index: make(map[T]struct{}, r.Cap()),
	}
}

// Add appends v unless it is already present. Returns true if v was added.
// When the ring is full, the oldest value is evicted.
func (d *DistinctRing[T]) Add(v T) bool {
	if _, ok := d.index[v]; ok {
		return false
	}
	if old, evicted := d.ring.Push(v); evicted {
		delete(d.index, old)
	}
	d.index[v] = struct{}{}
	return true
}

// Contains reports whether v is currently retained.
func (d *DistinctRing[T]) Contains(v T) bool {
	_, ok := d.index[v]
	return ok
}

// Len returns the number of retained values.
func (d *DistinctRing[T]) Len() int {
	return d.ring.Len()
}

// Cap returns the maximum number of values.
func (d *DistinctRing[T]) Cap() int {
	return d.ring.Cap()
}

// Values returns a copy of the retained values ordered oldest to newest.
func (d *DistinctRing[T]) Values() []T {
	return d.ring.Values()
}

// Reset removes all values.
func (d *DistinctRing[T]) Reset() {
	d.ring.Reset()
	clear(d.index)
}
