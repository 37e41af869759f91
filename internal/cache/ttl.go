package cache

import (
	"sync"
	"time"
)

// TTL is a small injected key/value cache with per-entry expiry. It
// replaces module-level cache maps so tests can inject a fixed clock.
type TTL struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
}

type entry struct {
	expiresAt time.Time
	value     any
}

// NewTTL creates a cache whose entries live for ttl. now may be nil,
// in which case time.Now is used.
func NewTTL(ttl time.Duration, now func() time.Time) *TTL {
	if now == nil {
		now = time.Now
	}
	return &TTL{ttl: ttl, now: now, m: make(map[string]entry)}
}

// Get returns the cached value for key, or false if absent or expired.
// Expired entries are evicted on access.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.m, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key, stamped with the cache TTL.
func (c *TTL) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{expiresAt: c.now().Add(c.ttl), value: value}
}

// Len reports the number of stored entries, including not-yet-evicted
// expired ones.
func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
