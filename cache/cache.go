// Package cache provides an in-memory, TTL- and size-bounded store of
// scored page documents.
package cache

import (
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/pagegraph"
)

// Cache defaults.
const (
	DefaultMaxSize = 50
	DefaultTTL     = 180 * time.Second
)

// Ensure Cache implements pagegraph.AnalysisCache at compile time.
var _ pagegraph.AnalysisCache = (*Cache)(nil)

// Cache holds scored documents until they expire or are evicted. When full,
// inserting a new key evicts the entry inserted first; reads do not change
// eviction order. Cache is safe for concurrent use and concurrent writes to
// the same key resolve last write wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string

	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	doc       *pagegraph.PageDocument
	expiresAt time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxSize sets the entry capacity. Non-positive values are ignored.
func WithMaxSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithTTL sets the lifetime used when Set is given no ttl.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		maxSize: DefaultMaxSize,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the live entry for key. A fingerprinted key that misses falls
// back to its bare URL key.
func (c *Cache) Get(key string) (*pagegraph.PageDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, ok := c.live(key); ok {
		return doc, true
	}
	if i := strings.LastIndex(key, fingerprintSep); i >= 0 {
		return c.live(key[:i])
	}
	return nil, false
}

// live returns the entry for key, evicting it if it has expired.
// Callers must hold c.mu.
func (c *Cache) live(key string) (*pagegraph.PageDocument, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		c.remove(key)
		return nil, false
	}
	return e.doc, true
}

// Set stores doc under key for ttl, or the default TTL when ttl is not
// positive. Overwriting keeps the key's insertion position.
func (c *Cache) Set(key string, doc *pagegraph.PageDocument, ttl time.Duration) {
	if doc == nil {
		return
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry{doc: doc, expiresAt: c.now().Add(ttl)}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = e
		return
	}
	if len(c.entries) >= c.maxSize && len(c.order) > 0 {
		c.remove(c.order[0])
	}
	c.entries[key] = e
	c.order = append(c.order, key)
}

// Delete removes key and reports whether it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.remove(key)
	return true
}

// Has reports whether key holds a live entry.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.live(key)
	return ok
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.order = c.order[:0]
}

// ClearExpired drops expired entries and returns how many were dropped.
func (c *Cache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed int
	for _, key := range slices.Clone(c.order) {
		if !now.Before(c.entries[key].expiresAt) {
			c.remove(key)
			removed++
		}
	}
	return removed
}

// Stats reports occupancy and each entry's remaining lifetime in insertion
// order. Expired entries not yet swept report zero.
func (c *Cache) Stats() pagegraph.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := pagegraph.CacheStats{
		Size:    len(c.entries),
		MaxSize: c.maxSize,
		Entries: make([]pagegraph.CacheEntryStats, 0, len(c.order)),
	}
	for _, key := range c.order {
		remaining := c.entries[key].expiresAt.Sub(now)
		stats.Entries = append(stats.Entries, pagegraph.CacheEntryStats{
			Key:                 key,
			RemainingTTLSeconds: max(0, int(math.Ceil(remaining.Seconds()))),
		})
	}
	return stats
}

// remove deletes key from both the map and the insertion order.
// Callers must hold c.mu.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}
