// Package analyze runs the snapshot, build, score and cache pipeline for
// single pages and batches of pages.
package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/build"
	"github.com/fwojciec/pagegraph/cache"
	"github.com/fwojciec/pagegraph/score"
)

// Ensure Analyzer implements pagegraph.DocumentAnalyzer at compile time.
var _ pagegraph.DocumentAnalyzer = (*Analyzer)(nil)

// Analyzer turns URLs into scored documents. Builder and Scorer default to
// the build and score packages; Cache and Store are optional.
type Analyzer struct {
	Provider pagegraph.Provider
	Builder  pagegraph.Builder
	Scorer   pagegraph.Scorer
	Cache    pagegraph.AnalysisCache
	Store    pagegraph.DocumentStore

	// TTL is the cache lifetime of new entries. Zero uses the cache default.
	TTL time.Duration

	// Fingerprint keys cache entries by visible text as well as URL, so
	// changed pages are rebuilt. It requires a snapshot on every call.
	Fingerprint bool

	// RetryDelays are the waits between snapshot attempts. Nil uses
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
}

// Analyze returns the scored document for url, from the cache when a live
// entry exists.
func (a *Analyzer) Analyze(ctx context.Context, url string) (*pagegraph.PageDocument, error) {
	if strings.TrimSpace(url) == "" {
		return nil, pagegraph.Errorf(pagegraph.EINVALID, "url required")
	}
	if a.Cache != nil && !a.Fingerprint {
		if doc, ok := a.Cache.Get(cache.Key(url, "")); ok {
			return doc, nil
		}
	}
	if a.Provider == nil {
		return nil, pagegraph.Errorf(pagegraph.EINTERNAL, "no provider configured")
	}

	delays := a.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	snap, err := SnapshotWithRetry(ctx, a.Provider, url, delays)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", url, err)
	}
	return a.AnalyzeSnapshot(ctx, snap)
}

// AnalyzeSnapshot builds and scores an already captured snapshot, consulting
// and filling the cache and archiving the result when a Store is set.
func (a *Analyzer) AnalyzeSnapshot(ctx context.Context, snap *pagegraph.Snapshot) (*pagegraph.PageDocument, error) {
	if snap == nil {
		return nil, pagegraph.Errorf(pagegraph.EINVALID, "nil snapshot")
	}

	key := cache.Key(snap.URL, "")
	if a.Fingerprint {
		key = cache.Key(snap.URL, cache.Fingerprint(snap))
	}
	if a.Cache != nil {
		if doc, ok := a.Cache.Get(key); ok {
			return doc, nil
		}
	}

	doc := a.scorer().Score(a.builder().Build(snap))

	if a.Cache != nil {
		a.Cache.Set(key, doc, a.TTL)
	}
	if a.Store != nil {
		if err := a.Store.SaveDocument(ctx, cache.Key(snap.URL, ""), doc); err != nil {
			return nil, fmt.Errorf("archive %s: %w", snap.URL, err)
		}
	}
	return doc, nil
}

func (a *Analyzer) builder() pagegraph.Builder {
	if a.Builder != nil {
		return a.Builder
	}
	return build.NewBuilder()
}

func (a *Analyzer) scorer() pagegraph.Scorer {
	if a.Scorer != nil {
		return a.Scorer
	}
	return score.NewScorer()
}
