// Package cache provides the explicit memoization layer for aggregation
// results: a mapping from a fingerprint of (operation, table content,
// arguments) to the previously computed value. Entries never evict within
// a session; the orchestrator clears the cache whenever a new table is
// loaded.
package cache

import (
	"strings"
	"sync"

	"salesdash/domain/core"
)

// Cache is a mutex-guarded result store safe for concurrent aggregation
// calls over one loaded table.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// New creates an empty cache
func New() *Cache {
	return &Cache{entries: make(map[string]interface{})}
}

// Key builds a cache key from an operation name, a table fingerprint, and
// any operation arguments.
func Key(op string, fp core.Fingerprint, args ...string) string {
	parts := append([]string{op, fp.String()}, args...)
	return strings.Join(parts, ":")
}

// Get returns a cached value and whether it was present
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a computed value
func (c *Cache) Put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Clear drops every entry; called when a new table replaces the old one
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]interface{})
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
