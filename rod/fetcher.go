package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pagegraph"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 30 * time.Second

// Option configures a Fetcher or Provider.
type Option func(*options)

type options struct {
	timeout time.Duration
	manager *BrowserManager
}

// WithFetchTimeout bounds each page load, including navigation and script
// evaluation. Non-positive values are ignored.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithManager shares an existing BrowserManager. The caller keeps ownership
// and must close it; Close on the Fetcher or Provider leaves it running.
func WithManager(bm *BrowserManager) Option {
	return func(o *options) {
		o.manager = bm
	}
}

// browser is the browser state common to Fetcher and Provider.
type browser struct {
	manager *BrowserManager
	owned   bool
	timeout time.Duration
}

func newBrowser(opts []Option) (*browser, error) {
	o := options{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	b := &browser{manager: o.manager, timeout: o.timeout}
	if b.manager == nil {
		bm, err := NewBrowserManager()
		if err != nil {
			return nil, err
		}
		b.manager, b.owned = bm, true
	}
	return b, nil
}

// load opens url in a new tab and calls fn once the page has loaded.
func (b *browser) load(ctx context.Context, url string, fn func(p *page) error) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	rp, release, err := b.manager.Page(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := rp.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, contextErr(ctx, err))
	}
	if err := rp.WaitLoad(); err != nil {
		return fmt.Errorf("loading %s: %w", url, contextErr(ctx, err))
	}
	if err := fn(&page{rp}); err != nil {
		return contextErr(ctx, err)
	}
	return nil
}

func (b *browser) close() error {
	if !b.owned {
		return nil
	}
	return b.manager.Close()
}

// contextErr prefers the context error so callers can match on it.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

// serializeScript returns the document HTML including open shadow roots.
const serializeScript = `() => {
  const root = document.documentElement;
  if (typeof root.getHTML === "function") {
    return "<!DOCTYPE html>" + root.getHTML({ serializableShadowRoots: true, shadowRoots: Array.from(document.querySelectorAll("*")).map(e => e.shadowRoot).filter(Boolean) });
  }
  return "<!DOCTYPE html>" + root.outerHTML;
}`

// Ensure Fetcher implements pagegraph.Fetcher at compile time.
var _ pagegraph.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	b *browser
}

// NewFetcher creates a Fetcher. Unless WithManager is given it launches its
// own headless browser, which Close shuts down.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	b, err := newBrowser(opts)
	if err != nil {
		return nil, err
	}
	return &Fetcher{b: b}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	err = f.b.load(ctx, url, func(p *page) error {
		html, err = p.eval(serializeScript)
		return err
	})
	if err != nil {
		return "", err
	}
	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.b.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.b.close()
}
