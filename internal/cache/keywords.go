// Sentinel - Device Fingerprinting and Login Anomaly Detection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sentinel

package cache

import "strings"

// KeywordMatcher finds which of a fixed set of keywords occur in a text using
// the Aho-Corasick algorithm: one pass over the text regardless of how many
// keywords are registered. Matching is case-insensitive.
//
// Example:
//
//	m := cache.NewKeywordMatcher("headless", "selenium", "bot")
//	m.Matches("Mozilla/5.0 HeadlessChrome/91") // ["headless"]
//	m.Contains("Googlebot/2.1")                 // true
type KeywordMatcher struct {
	root     *acNode
	keywords []string
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices into keywords ending at this node
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// NewKeywordMatcher builds the automaton. Empty and duplicate keywords are
// ignored.
func NewKeywordMatcher(keywords ...string) *KeywordMatcher {
	m := &KeywordMatcher{root: newACNode()}

	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		m.insert(len(m.keywords), kw)
		m.keywords = append(m.keywords, kw)
	}

	m.buildFailureLinks()
	return m
}

func (m *KeywordMatcher) insert(index int, kw string) {
	node := m.root
	for _, ch := range kw {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks links each node to its longest proper suffix (BFS).
func (m *KeywordMatcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// scan walks text and calls visit for every keyword occurrence. It stops
// early when visit returns false.
func (m *KeywordMatcher) scan(text string, visit func(index int) bool) {
	node := m.root
	for _, ch := range strings.ToLower(text) {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		for _, idx := range node.output {
			if !visit(idx) {
				return
			}
		}
	}
}

// Matches returns each keyword found in text once, in registration order.
func (m *KeywordMatcher) Matches(text string) []string {
	if len(m.keywords) == 0 {
		return nil
	}

	found := make([]bool, len(m.keywords))
	m.scan(text, func(idx int) bool {
		found[idx] = true
		return true
	})

	var out []string
	for i, ok := range found {
		if ok {
			out = append(out, m.keywords[i])
		}
	}
	return out
}

// Contains reports whether any keyword occurs in text.
func (m *KeywordMatcher) Contains(text string) bool {
	hit := false
	m.scan(text, func(int) bool {
		hit = true
		return false
	})
	return hit
}

// Keywords returns the registered keywords in registration order.
func (m *KeywordMatcher) Keywords() []string {
	out := make([]string, len(m.keywords))
	copy(out, m.keywords)
	return out
}
