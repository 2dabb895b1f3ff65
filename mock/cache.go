package mock

import (
	"time"

	"github.com/fwojciec/pagegraph"
)

var _ pagegraph.AnalysisCache = (*AnalysisCache)(nil)

// AnalysisCache is a mock implementation of pagegraph.AnalysisCache.
type AnalysisCache struct {
	GetFn          func(key string) (*pagegraph.PageDocument, bool)
	SetFn          func(key string, doc *pagegraph.PageDocument, ttl time.Duration)
	DeleteFn       func(key string) bool
	HasFn          func(key string) bool
	ClearFn        func()
	ClearExpiredFn func() int
	StatsFn        func() pagegraph.CacheStats
}

func (c *AnalysisCache) Get(key string) (*pagegraph.PageDocument, bool) {
	return c.GetFn(key)
}

func (c *AnalysisCache) Set(key string, doc *pagegraph.PageDocument, ttl time.Duration) {
	c.SetFn(key, doc, ttl)
}

func (c *AnalysisCache) Delete(key string) bool {
	return c.DeleteFn(key)
}

func (c *AnalysisCache) Has(key string) bool {
	return c.HasFn(key)
}

func (c *AnalysisCache) Clear() {
	c.ClearFn()
}

func (c *AnalysisCache) ClearExpired() int {
	return c.ClearExpiredFn()
}

func (c *AnalysisCache) Stats() pagegraph.CacheStats {
	return c.StatsFn()
}
