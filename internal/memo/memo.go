// Package memo provides a process-lifetime memoization cache.
//
// Entries are keyed by exact string equality and are never evicted. Concurrent
// callers asking for the same missing key share a single computation, and a
// failed computation is never stored, so a later call retries it.
package memo

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Stats reports cache activity since construction.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Cache memoizes values of type V by string key.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// New returns an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]V)}
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Do returns the cached value for key, computing and storing it with fn on a
// miss. The boolean reports whether the value came from the cache.
func (c *Cache[V]) Do(key string, fn func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}

	cached := false
	res, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have stored the value between our Get and
		// entering the flight.
		if v, ok := c.Get(key); ok {
			cached = true
			return v, nil
		}
		v, err := fn()
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})
	if cached {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), cached, nil
}

// Len returns the number of stored entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of hit and miss counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.Len(),
	}
}
