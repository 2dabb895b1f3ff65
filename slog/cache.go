package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagegraph"
)

var _ pagegraph.AnalysisCache = (*LoggingCache)(nil)

// LoggingCache wraps an AnalysisCache with debug logging of lookups and
// writes. Eviction sweeps are logged at Info.
type LoggingCache struct {
	next   pagegraph.AnalysisCache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next pagegraph.AnalysisCache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

func (c *LoggingCache) Get(key string) (doc *pagegraph.PageDocument, ok bool) {
	defer func(begin time.Time) {
		c.logger.Debug("cache get",
			"key", key,
			"hit", ok,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Get(key)
}

func (c *LoggingCache) Set(key string, doc *pagegraph.PageDocument, ttl time.Duration) {
	c.logger.Debug("cache set", "key", key, "ttl", ttl)
	c.next.Set(key, doc, ttl)
}

func (c *LoggingCache) Delete(key string) bool {
	existed := c.next.Delete(key)
	c.logger.Debug("cache delete", "key", key, "existed", existed)
	return existed
}

func (c *LoggingCache) Has(key string) bool {
	return c.next.Has(key)
}

func (c *LoggingCache) Clear() {
	c.logger.Info("cache clear")
	c.next.Clear()
}

func (c *LoggingCache) ClearExpired() int {
	n := c.next.ClearExpired()
	c.logger.Info("cache sweep", "removed", n)
	return n
}

func (c *LoggingCache) Stats() pagegraph.CacheStats {
	return c.next.Stats()
}
