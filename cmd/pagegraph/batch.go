package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/analyze"
	"github.com/fwojciec/pagegraph/extract"
	"github.com/fwojciec/pagegraph/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	limiter := deps.RateLimiter
	if limiter == nil && c.Rate > 0 {
		limiter = analyze.NewDomainLimiter(c.Rate)
	}

	b := &analyze.Batch{
		Analyzer:    deps.Analyzer,
		RateLimiter: limiter,
		Concurrency: c.Concurrency,
	}

	progress := func(event analyze.ProgressEvent) {
		switch event.Type {
		case analyze.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Analysing %d pages\n", event.Total)
		case analyze.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  duplicate %s\n", event.URL)
		case analyze.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	results, err := b.Run(deps.Ctx, c.URLs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var store pagegraph.ExcerptStore
	if c.Out != "" {
		dir, err := filepath.Abs(c.Out)
		if err != nil {
			return err
		}
		store = fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
	}

	opts := pagegraph.DefaultExtractOptions()
	opts.MaxChars = c.MaxChars

	var ok, failed, duplicates int
	for _, r := range results {
		switch {
		case r.Duplicate:
			duplicates++
			continue
		case r.Err != nil:
			failed++
			continue
		}
		ok++

		res := extract.Extract(r.Document, opts)
		if store == nil {
			fmt.Fprintf(deps.Stdout, "\n== %s\n%s\n", r.URL, res.Content)
			continue
		}
		if err := store.Save(deps.Ctx, &pagegraph.Excerpt{
			URL:     r.URL,
			Title:   r.Document.Title,
			Content: res.Content,
		}); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: saving %s: %v\n", r.URL, err)
			return err
		}
	}

	if store != nil {
		if err := store.Commit(); err != nil {
			_ = store.Abort()
			return fmt.Errorf("committing excerpts: %w", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "\nAnalysed %d pages (%d failed, %d duplicates)\n", ok, failed, duplicates)
	printCacheStats(deps)
	return nil
}

func printCacheStats(deps *Dependencies) {
	if deps.Cache == nil {
		return
	}
	stats := deps.Cache.Stats()
	fmt.Fprintf(deps.Stdout, "Cache: %d/%d entries\n", stats.Size, stats.MaxSize)
	for _, e := range stats.Entries {
		fmt.Fprintf(deps.Stdout, "  %s  expires in %ds\n", e.Key, e.RemainingTTLSeconds)
	}
}
