// Package rescache caches completed search results keyed by the exact
// query string. Keys are case-sensitive and unnormalized: "IPL score"
// and "ipl score" are distinct entries. Entries expire after a TTL and
// concurrent lookups for the same missing key share a single
// computation.
package rescache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL bounds how long a completed result is served before the
// pipeline runs again for the same query.
const DefaultTTL = 10 * time.Minute

type entry struct {
	value     string
	expiresAt time.Time
}

// ResultCache is a TTL cache of finished result payloads. The zero
// value is not usable; construct with New.
type ResultCache struct {
	ttl   time.Duration
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry

	// now is swappable in tests.
	now func() time.Time
}

// New returns a ResultCache with the given TTL, or DefaultTTL when
// ttl <= 0.
func New(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for query if present and unexpired.
func (c *ResultCache) Get(query string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[query]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, query)
		return "", false
	}
	return e.value, true
}

// Put stores value for query with the cache TTL.
func (c *ResultCache) Put(query, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// GetOrCompute returns the cached value for query, or runs compute to
// produce it. While one computation for a query is in flight, other
// callers with the same query wait for its result instead of starting
// their own. A compute error is returned to all waiters and nothing is
// cached.
func (c *ResultCache) GetOrCompute(ctx context.Context, query string, compute func(context.Context) (string, error)) (string, error) {
	if v, ok := c.Get(query); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(query, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// populated the entry between the miss and the Do.
		if v, ok := c.Get(query); ok {
			return v, nil
		}
		out, err := compute(ctx)
		if err != nil {
			return "", err
		}
		c.Put(query, out)
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Purge removes all expired entries. Callers may run it periodically;
// Get already evicts lazily, so Purge only bounds idle memory.
func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of stored entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
