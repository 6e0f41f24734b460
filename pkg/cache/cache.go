// Package cache provides a short-TTL memoization layer for expensive
// read-side queries. Entries live in a sharded in-memory map with a mutex per
// shard. The cache is read-path only: it never gates writes, and disabling it
// changes nothing but latency.
package cache

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"
)

const shardCount = 32

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

type shard struct {
	mu      sync.Mutex
	entries map[string]entry
}

// Cache memoizes fetcher results per key with a per-entry TTL.
// Safe for concurrent use.
type Cache struct {
	enabled bool
	shards  [shardCount]*shard

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Cache. When enabled is false every GetOrCompute call invokes
// its fetcher and nothing is stored.
func New(enabled bool) *Cache {
	c := &Cache{
		enabled: enabled,
		now:     time.Now,
	}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[string]entry)}
	}

	return c
}

func (c *Cache) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return c.shards[h.Sum32()%shardCount]
}

// GetOrCompute returns the cached value for key when present and fresh;
// otherwise it invokes fetch, stores the result with the given TTL and
// returns it. Fetch errors are returned verbatim and nothing is stored.
func (c *Cache) GetOrCompute(ctx context.Context,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (any, error)) (any, error) {
	if !c.enabled {
		return fetch(ctx)
	}

	s := c.shardFor(key)

	s.mu.Lock()
	if e, ok := s.entries[key]; ok && c.now().Sub(e.storedAt) < e.ttl {
		s.mu.Unlock()

		return e.value, nil
	}
	s.mu.Unlock()

	// fetch outside the shard lock so a slow query does not block unrelated
	// keys on the same shard; concurrent misses may fetch redundantly, which
	// is acceptable for a read-side memoization layer
	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, storedAt: c.now(), ttl: ttl}
	s.mu.Unlock()

	return value, nil
}

// Invalidate removes all entries whose key contains pattern. An empty pattern
// clears the whole cache.
func (c *Cache) Invalidate(pattern string) {
	for _, s := range c.shards {
		s.mu.Lock()
		if pattern == "" {
			s.entries = make(map[string]entry)
		} else {
			for k := range s.entries {
				if strings.Contains(k, pattern) {
					delete(s.entries, k)
				}
			}
		}
		s.mu.Unlock()
	}
}

// SetNow overrides the cache's clock. Test helper.
func (c *Cache) SetNow(now func() time.Time) { c.now = now }

// GetOrCompute is the typed wrapper around Cache.GetOrCompute. It spares
// callers the any-assertion at every call site.
func GetOrCompute[T any](ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.GetOrCompute(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T

		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		// a colliding key stored a different type; treat as a miss
		return fetch(ctx)
	}

	return typed, nil
}
