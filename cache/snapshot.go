package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// SnapshotCache keeps one value per key for a bounded time. The dashboard
// uses it per organization so repeated page loads do not re-run the
// aggregate queries.
type SnapshotCache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[V]
}

func NewSnapshotCache[V any](ttl time.Duration) *SnapshotCache[V] {
	return &SnapshotCache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value when present and fresh.
func (c *SnapshotCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || time.Since(e.storedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *SnapshotCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, storedAt: time.Now()}
}

// Invalidate drops one key; mutating handlers call it so the next
// dashboard load sees fresh numbers.
func (c *SnapshotCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear drops everything.
func (c *SnapshotCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[V])
}

// Stats reports entry count, for the cache admin endpoint.
func (c *SnapshotCache[V]) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]any{
		"entries": len(c.entries),
		"ttl":     c.ttl.String(),
	}
}
