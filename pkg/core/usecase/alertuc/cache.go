// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package alertuc

import (
	"sync"

	"github.com/momeni/job-alerts/pkg/core/model"
)

// cacheEntry pairs a mirrored posting with its notified marker. The
// marker transitions from false to true exactly once per posting ID
// per cache lifetime, unless the posting coordinates change and so
// the alert is re-armed by the Replace method.
type cacheEntry struct {
	posting  model.JobPosting
	notified bool
}

// Cache holds the last fetched snapshot of job postings in their fetch
// order, in addition to a per-posting notified marker. The entry set
// is replaced wholesale on each successful fetch; postings which are
// absent from the new snapshot are dropped together with their
// notified history.
// All methods are safe for concurrent use. However, the read-then-mark
// sequence of the dispatcher is only coherent because the coordinator
// serializes refresh cycles; the cache itself never interleaves a
// Replace with a single UnnotifiedWithin or MarkNotified call.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	order   []string // posting IDs in fetch order
}

// NewCache instantiates an empty postings cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
	}
}

// Replace atomically swaps the entry set with the given postings.
// For each incoming posting, the notified marker is carried over from
// an existing entry only if that entry has the same ID and the exact
// same coordinates; otherwise the entry is inserted fresh with a
// cleared marker. This preserves alert history across refreshes for
// unmoved postings, while re-arming alerts for relocated ones.
func (c *Cache) Replace(postings []model.JobPosting) {
	entries := make(map[string]*cacheEntry, len(postings))
	order := make([]string, 0, len(postings))
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range postings {
		if _, dup := entries[p.ID]; dup {
			continue // the first occurrence of an ID wins
		}
		e := &cacheEntry{posting: p}
		if old, ok := c.entries[p.ID]; ok {
			e.notified = old.notified && sameLocation(
				old.posting.Location, p.Location,
			)
		}
		entries[p.ID] = e
		order = append(order, p.ID)
	}
	c.entries = entries
	c.order = order
}

// sameLocation reports whether two posting locations are equal.
// Two nil locations are considered equal (the posting did not move);
// coordinates are compared exactly, so any stored change re-arms the
// alert.
func sameLocation(a, b *model.Coordinate) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Lat == b.Lat && a.Lon == b.Lon
}

// MarkNotified sets the notified marker of the id posting. It is a
// no-op if id is absent, as the posting may have been dropped by an
// intervening Replace.
func (c *Cache) MarkNotified(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[id]; ok {
		e.notified = true
	}
}

// UnnotifiedWithin returns the postings out of the given ID list which
// are present in the cache and are not marked notified yet, preserving
// the order of the ids argument.
func (c *Cache) UnnotifiedWithin(ids []string) []model.JobPosting {
	c.mu.Lock()
	defer c.mu.Unlock()
	var postings []model.JobPosting
	for _, id := range ids {
		if e, ok := c.entries[id]; ok && !e.notified {
			postings = append(postings, e.posting)
		}
	}
	return postings
}

// Postings returns a snapshot of all cached postings in fetch order.
func (c *Cache) Postings() []model.JobPosting {
	c.mu.Lock()
	defer c.mu.Unlock()
	postings := make([]model.JobPosting, 0, len(c.order))
	for _, id := range c.order {
		postings = append(postings, c.entries[id].posting)
	}
	return postings
}

// Len returns the number of cached postings.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
