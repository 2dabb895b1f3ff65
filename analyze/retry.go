package analyze

import (
	"context"
	"time"

	"github.com/fwojciec/pagegraph"
)

// DefaultRetryDelays returns the backoff delays for snapshot retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// SnapshotWithRetry takes a snapshot, retrying once per delay on failure.
// Invalid requests and missing pages are not retried.
func SnapshotWithRetry(ctx context.Context, provider pagegraph.Provider, url string, delays []time.Duration) (*pagegraph.Snapshot, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		snap, err := provider.Snapshot(ctx, url)
		if err == nil {
			return snap, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func retryable(err error) bool {
	switch pagegraph.ErrorCode(err) {
	case pagegraph.EINVALID, pagegraph.ENOTFOUND:
		return false
	}
	return true
}
