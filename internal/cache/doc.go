// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

/*
Package cache provides the small in-memory data structures the engine is built on.

# Structures

  - Ring: fixed-capacity FIFO buffer with O(1) eviction (login history)
  - DistinctRing: dedup-then-FIFO buffer with O(1) membership (IPs, devices, locations)
  - AgeHeap: min-heap keyed by string and ordered by timestamp (age-based eviction)
  - KeywordMatcher: Aho-Corasick automaton for multi-keyword user agent scans

# Thread Safety

Ring, DistinctRing and AgeHeap are NOT safe for concurrent use. They are
embedded in larger structures (behavior patterns, the device registry) whose
owners hold the lock.

KeywordMatcher is immutable once constructed and may be shared freely.
*/
package cache
