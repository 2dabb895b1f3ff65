package goquery

import (
	"context"

	"github.com/fwojciec/pagegraph"
)

// Ensure Provider implements pagegraph.Provider at compile time.
var _ pagegraph.Provider = (*Provider)(nil)

// Provider snapshots pages by fetching HTML and parsing it statically.
// Visibility is limited to what inline markup declares and no element
// carries a bounding box.
type Provider struct {
	fetcher pagegraph.Fetcher
}

// NewProvider creates a Provider backed by the given Fetcher.
func NewProvider(fetcher pagegraph.Fetcher) *Provider {
	return &Provider{fetcher: fetcher}
}

// Snapshot fetches the URL and parses the returned HTML.
func (p *Provider) Snapshot(ctx context.Context, url string) (*pagegraph.Snapshot, error) {
	html, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(html, url)
}

// Close releases the underlying fetcher.
func (p *Provider) Close() error {
	return p.fetcher.Close()
}
