package analyze

import (
	"context"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/bloom"
	"github.com/fwojciec/pagegraph/cache"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages analysed at once.
const DefaultConcurrency = 10

// dedupeFalsePositiveRate is the chance a new URL is taken for a duplicate.
const dedupeFalsePositiveRate = 0.0001

// Batch analyses many URLs concurrently.
type Batch struct {
	Analyzer    pagegraph.DocumentAnalyzer
	RateLimiter pagegraph.DomainLimiter
	Concurrency int
}

// Result is the outcome for one input URL.
type Result struct {
	URL      string
	Key      string
	Document *pagegraph.PageDocument
	Err      error

	// Duplicate is set when an earlier URL in the batch shares the cache key.
	Duplicate bool
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSkipped
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is always
// called from the goroutine running Run.
type ProgressFunc func(event ProgressEvent)

// Run analyses urls and returns one Result per input URL in input order.
// URLs whose cache key was already seen in the batch are skipped and marked
// Duplicate. Per-URL failures are reported in the results; the returned
// error is non-nil only when ctx ends first.
func (b *Batch) Run(ctx context.Context, urls []string, progress ProgressFunc) ([]Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	results := make([]Result, len(urls))
	seen := bloom.NewFilter(uint(len(urls)), dedupeFalsePositiveRate)
	var jobs []int
	for i, u := range urls {
		key := cache.Key(u, "")
		results[i] = Result{URL: u, Key: key}
		if seen.Seen(key) {
			results[i].Duplicate = true
			continue
		}
		jobs = append(jobs, i)
	}

	total := len(jobs)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})
	for _, r := range results {
		if r.Duplicate {
			progress(ProgressEvent{Type: ProgressSkipped, Total: total, URL: r.URL})
		}
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	doneCh := make(chan int, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, i := range jobs {
			g.Go(func() error {
				results[i].Document, results[i].Err = b.analyze(gctx, urls[i])
				doneCh <- i
				return nil
			})
		}
		_ = g.Wait()
		close(doneCh)
	}()

	var completed int
	for i := range doneCh {
		completed++
		n := completed
		r := results[i]
		if r.Err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: r.URL, Error: r.Err})
			continue
		}
		progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: r.URL})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return results, ctx.Err()
}

func (b *Batch) analyze(ctx context.Context, url string) (*pagegraph.PageDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := WaitURL(ctx, b.RateLimiter, url); err != nil {
		return nil, err
	}
	return b.Analyzer.Analyze(ctx, url)
}
