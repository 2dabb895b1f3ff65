package mock

import (
	"context"

	"github.com/fwojciec/pagegraph"
)

var _ pagegraph.Provider = (*Provider)(nil)

// Provider is a mock implementation of pagegraph.Provider.
type Provider struct {
	SnapshotFn func(ctx context.Context, url string) (*pagegraph.Snapshot, error)
	CloseFn    func() error
}

func (p *Provider) Snapshot(ctx context.Context, url string) (*pagegraph.Snapshot, error) {
	return p.SnapshotFn(ctx, url)
}

func (p *Provider) Close() error {
	return p.CloseFn()
}

var _ pagegraph.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagegraph.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
