package rod

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/pagegraph"
	"github.com/go-rod/rod"
)

// DefaultMaxDepth bounds how deep the in-page walker descends.
const DefaultMaxDepth = 256

// walkScript serializes the live body as a RawElement tree. Visibility and
// boxes come from computed layout; visible text is innerText.
const walkScript = `(maxDepth) => {
  const skip = new Set(["script", "style", "noscript", "template", "head", "meta", "link"]);
  const walk = (el, depth) => {
    const tag = el.tagName.toLowerCase();
    const style = getComputedStyle(el);
    const box = el.getBoundingClientRect();
    const hidden = style.display === "none" || style.visibility === "hidden" ||
      (el.getClientRects().length === 0 && style.display !== "contents");
    const attrs = {};
    for (const a of el.attributes) attrs[a.name] = a.value;
    let own = "";
    for (const n of el.childNodes) if (n.nodeType === Node.TEXT_NODE) own += n.textContent;
    const node = {
      tag: tag,
      attrs: attrs,
      ownText: own.replace(/\s+/g, " ").trim(),
      text: hidden || skip.has(tag) ? "" : (el.innerText || el.textContent || "").replace(/\s+/g, " ").trim(),
      hidden: hidden,
      rect: { width: box.width, height: box.height, area: box.width * box.height },
      markup: el.outerHTML.length,
      children: []
    };
    if (depth < maxDepth && !skip.has(tag)) {
      for (const c of el.children) node.children.push(walk(c, depth + 1));
    }
    return node;
  };
  return JSON.stringify({ title: document.title, root: document.body ? walk(document.body, 0) : null });
}`

// Ensure Provider implements pagegraph.Provider at compile time.
var _ pagegraph.Provider = (*Provider)(nil)

// Provider snapshots the live element tree of rendered pages, including
// computed visibility and bounding boxes.
// Provider is safe for concurrent use by multiple goroutines.
type Provider struct {
	b        *browser
	maxDepth int
}

// NewProvider creates a Provider. Unless WithManager is given it launches
// its own headless browser, which Close shuts down.
func NewProvider(opts ...Option) (*Provider, error) {
	b, err := newBrowser(opts)
	if err != nil {
		return nil, err
	}
	return &Provider{b: b, maxDepth: DefaultMaxDepth}, nil
}

// Snapshot loads the URL and captures its element tree.
func (p *Provider) Snapshot(ctx context.Context, url string) (*pagegraph.Snapshot, error) {
	var snap *pagegraph.Snapshot
	err := p.b.load(ctx, url, func(pg *page) error {
		data, err := pg.eval(walkScript, p.maxDepth)
		if err != nil {
			return err
		}
		snap, err = DecodeSnapshot(url, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (p *Provider) Close() error {
	return p.b.close()
}

// DecodeSnapshot parses the walker output into a Snapshot.
func DecodeSnapshot(url, data string) (*pagegraph.Snapshot, error) {
	var payload struct {
		Title string                `json:"title"`
		Root  *pagegraph.RawElement `json:"root"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, pagegraph.Errorf(pagegraph.EINVALID, "invalid element tree: %v", err)
	}
	snap := &pagegraph.Snapshot{URL: url, Title: strings.TrimSpace(payload.Title)}
	if payload.Root != nil {
		snap.Root = payload.Root
	}
	return snap, nil
}

// page wraps a rod page for script evaluation.
type page struct {
	*rod.Page
}

// eval runs a function expression and returns its string result.
func (p *page) eval(js string, args ...any) (string, error) {
	res, err := p.Eval(js, args...)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}
