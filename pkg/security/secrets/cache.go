package secrets

import (
	"sync"
	"time"
)

// CacheConfig configures the secret cache. A zero TTL disables caching.
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Cache is a small TTL cache for resolved secrets.
type Cache struct {
	config  CacheConfig
	entries map[string]*cacheEntry
	mu      sync.RWMutex
}

// NewCache creates a secret cache. MaxSize defaults to 16.
func NewCache(config CacheConfig) *Cache {
	if config.MaxSize <= 0 {
		config.MaxSize = 16
	}
	return &Cache{
		config:  config,
		entries: make(map[string]*cacheEntry),
	}
}

// Enabled reports whether values are cached at all.
func (c *Cache) Enabled() bool {
	return c.config.TTL > 0
}

// Get returns a cached, unexpired value.
func (c *Cache) Get(key string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

// Set stores value, evicting the entry closest to expiry when full.
func (c *Cache) Set(key, value string) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.config.MaxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.expiresAt.Before(oldest) {
				oldestKey, oldest = k, e.expiresAt
			}
		}
		delete(c.entries, oldestKey)
	}

	c.entries[key] = &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(c.config.TTL),
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Size returns the current number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
