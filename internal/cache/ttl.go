// Package cache holds the process-wide TTL cache used to avoid repeated
// metadata-store round trips on hot read paths. Entries are immutable once
// written; concurrent cold reads may each fetch and overwrite the same key,
// which is redundant work but not a consistency problem.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// TTL is a fixed-duration cache keyed by string.
type TTL[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

func New[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value when it is still within its TTL.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.fetchedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores a value, last write wins.
func (c *TTL[V]) Put(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops a key immediately.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// SetClock replaces the time source, for tests.
func (c *TTL[V]) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
