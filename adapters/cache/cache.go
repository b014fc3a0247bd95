// Package cache provides page caches that are invalidated by tag.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/artpar/postshop/adapters/clock"
	"github.com/artpar/postshop/adapters/metrics"
	"github.com/artpar/postshop/ports"
)

// Memory is an in-memory tagged page cache.
// Entries expire after the configured TTL; when full, the oldest entry is evicted.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]*entry
	byTag      map[string]map[string]struct{}
	ttl        time.Duration
	maxEntries int
	clock      ports.Clock
	metrics    *metrics.Collector

	// version counts invalidations. touched holds the version at which each
	// tag was last invalidated; entries at or below floor were forgotten.
	version uint64
	touched map[string]uint64
	floor   uint64
}

// maxTouched bounds the invalidation history kept for racing writers.
const maxTouched = 4096

type entry struct {
	body      []byte
	tags      []string
	storedAt  time.Time
	expiresAt time.Time
}

// Option configures a Memory cache.
type Option func(*Memory)

// WithClock sets the time source used for expiry.
func WithClock(c ports.Clock) Option {
	return func(m *Memory) { m.clock = c }
}

// WithMetrics records hits, misses and invalidations.
func WithMetrics(c *metrics.Collector) Option {
	return func(m *Memory) { m.metrics = c }
}

// NewMemory creates a tagged cache. ttl <= 0 disables expiry and
// maxEntries <= 0 disables the size bound.
func NewMemory(ttl time.Duration, maxEntries int, opts ...Option) *Memory {
	m := &Memory{
		entries:    make(map[string]*entry),
		byTag:      make(map[string]map[string]struct{}),
		touched:    make(map[string]uint64),
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock.Real{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a cached body.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if ok && !e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt) {
		m.removeLocked(key)
		ok = false
	}
	m.metrics.CacheLookup(ok)
	if !ok {
		return nil, false
	}
	return e.body, true
}

// Version returns the current invalidation count.
func (m *Memory) Version(ctx context.Context) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Set stores body under key with the given tags, replacing any previous
// entry. A body rendered before one of its tags was invalidated is dropped.
func (m *Memory) Set(ctx context.Context, key string, tags []string, body []byte, since uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.staleLocked(tags, since) {
		return
	}

	if _, exists := m.entries[key]; exists {
		m.removeLocked(key)
	} else if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictOldestLocked()
	}

	now := m.clock.Now()
	e := &entry{
		body:     body,
		tags:     append([]string(nil), tags...),
		storedAt: now,
	}
	if m.ttl > 0 {
		e.expiresAt = now.Add(m.ttl)
	}
	m.entries[key] = e

	for _, tag := range e.tags {
		keys, ok := m.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			m.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate drops every entry carrying any of the tags.
func (m *Memory) Invalidate(ctx context.Context, tags ...string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.version++
	if len(m.touched)+len(tags) > maxTouched {
		clear(m.touched)
		m.floor = m.version - 1
	}

	total := 0
	for _, tag := range tags {
		m.touched[tag] = m.version
		n := 0
		for key := range m.byTag[tag] {
			m.removeLocked(key)
			n++
		}
		delete(m.byTag, tag)
		m.metrics.CacheInvalidated(tag, n)
		total += n
	}
	return total
}

// SetTTL changes the TTL applied to entries stored from now on.
func (m *Memory) SetTTL(ttl time.Duration) {
	m.mu.Lock()
	m.ttl = ttl
	m.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) staleLocked(tags []string, since uint64) bool {
	if since < m.floor {
		return true
	}
	for _, tag := range tags {
		if m.touched[tag] > since {
			return true
		}
	}
	return false
}

func (m *Memory) removeLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, tag := range e.tags {
		if keys, ok := m.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(m.byTag, tag)
			}
		}
	}
}

func (m *Memory) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, e := range m.entries {
		if oldestKey == "" || e.storedAt.Before(oldest) || (e.storedAt.Equal(oldest) && key < oldestKey) {
			oldestKey, oldest = key, e.storedAt
		}
	}
	if oldestKey != "" {
		m.removeLocked(oldestKey)
	}
}

// Noop never stores anything. Used when caching is disabled.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) ([]byte, bool)                            { return nil, false }
func (Noop) Version(ctx context.Context) uint64                                            { return 0 }
func (Noop) Set(ctx context.Context, key string, tags []string, body []byte, since uint64) {}
func (Noop) Invalidate(ctx context.Context, tags ...string) int                            { return 0 }

// Ensure interface compliance.
var (
	_ ports.PageCache = (*Memory)(nil)
	_ ports.PageCache = Noop{}
)
