package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process result backend. Expired entries read as
// absent and a background janitor evicts them between lookups.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache creates an in-process backend. A non-positive cleanup
// interval defaults to twice the TTL so stale results do not pile up
// between matches.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = 2 * defaultTTL
	}
	return &MemoryCache{entries: gocache.New(defaultTTL, cleanupInterval)}
}

// Get returns the stored bytes for a key, or absent. An entry holding
// anything but bytes reads as a miss.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.entries.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, false
	}
	return data, true
}

// Set stores bytes under a key for the given TTL
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.entries.Set(key, value, ttl)
	return nil
}

// Delete removes a key
func (c *MemoryCache) Delete(key string) error {
	c.entries.Delete(key)
	return nil
}
