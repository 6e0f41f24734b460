// Package ratelimit implements a per-identifier, fixed-window admission gate.
// Counters live in a sharded in-memory map with a mutex per shard so
// concurrent admission checks on different identifiers do not serialize.
// The limiter never returns an error; it answers allowed/denied and leaves
// the user-visible response to the caller.
package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"
)

// Class names a group of operations sharing one limit configuration.
type Class string

const (
	// ClassGeneric covers ordinary API reads and writes.
	ClassGeneric Class = "generic"
	// ClassScan covers scan admission, the most expensive operation.
	ClassScan Class = "scan"
	// ClassAuth covers authentication attempts.
	ClassAuth Class = "auth"
)

// Limit configures one operation class.
type Limit struct {
	// MaxRequests is the number of requests admitted per window.
	MaxRequests int
	// Window is the fixed window duration.
	Window time.Duration
}

const shardCount = 32

type entry struct {
	count   int
	resetAt time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// Limiter is a process-local fixed-window rate limiter. Safe for concurrent use.
type Limiter struct {
	classes  map[Class]Limit
	fallback Limit
	shards   [shardCount]*shard

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Limiter with the given per-class limits. Classes without an
// explicit limit fall back to the provided default.
func New(classes map[Class]Limit, fallback Limit) *Limiter {
	l := &Limiter{
		classes:  classes,
		fallback: fallback,
		now:      time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &shard{entries: make(map[string]*entry)}
	}

	return l
}

// limitFor resolves the limit configuration for a class.
func (l *Limiter) limitFor(class Class) Limit {
	if lim, ok := l.classes[class]; ok {
		return lim
	}

	return l.fallback
}

// Window returns the window duration configured for the class. Callers use it
// to derive a Retry-After hint on denial.
func (l *Limiter) Window(class Class) time.Duration {
	return l.limitFor(class).Window
}

func (l *Limiter) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return l.shards[h.Sum32()%shardCount]
}

// Admit records one request for the identifier under the given class and
// reports whether it is within the window limit. On the first request of a
// window the counter starts at 1; once the window elapses the record resets
// transparently. Expired records on the visited shard are pruned lazily.
func (l *Limiter) Admit(identifier string, class Class) bool {
	lim := l.limitFor(class)
	if lim.MaxRequests <= 0 || lim.Window <= 0 {
		return true
	}

	key := identifier + "|" + string(class)
	now := l.now()

	s := l.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	// lazy prune of expired windows sharing this shard
	for k, e := range s.entries {
		if k != key && now.After(e.resetAt) {
			delete(s.entries, k)
		}
	}

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		s.entries[key] = &entry{count: 1, resetAt: now.Add(lim.Window)}

		return true
	}

	e.count++

	return e.count <= lim.MaxRequests
}

// SetNow overrides the limiter's clock. Test helper.
func (l *Limiter) SetNow(now func() time.Time) { l.now = now }
