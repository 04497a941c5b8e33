// Package cache provides the in-memory TTL store used by the indicator
// engine. Entries expire lazily on read; there is no per-key
// invalidation beyond a global clear.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is a concurrency-safe key -> (value, expiry) store.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty TTLCache.
func New() *TTLCache {
	return &TTLCache{entries: make(map[string]entry)}
}

// Get returns the value for key if present and unexpired. Expired
// entries are removed on access.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another writer may have
		// refreshed the key in the meantime.
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()

		return nil, false
	}

	return e.value, true
}

// Set stores value under key for the given TTL. A non-positive TTL
// stores the value without expiry.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Clear drops all entries unconditionally.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of stored entries, including any not yet
// evicted expired ones.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
