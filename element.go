package pagegraph

import "context"

// Element is one node of a rendered element tree as exposed by a Provider.
type Element interface {
	// TagName returns the lowercase element tag.
	TagName() string

	// Attr returns the value of an attribute, or "" when absent.
	Attr(name string) string

	// Children returns the element children in document order.
	Children() []Element

	// OwnText returns the text of direct text-node children only.
	OwnText() string

	// Text returns the visible descendant text.
	Text() string

	// Visible reports whether the element has a rendered box.
	Visible() bool

	// Rect returns the rendered bounding box, or nil when unknown.
	Rect() *Rect

	// MarkupLength returns the length of the element's serialized markup.
	MarkupLength() int
}

// RawElement is a plain-data Element. Providers decode their trees into it.
type RawElement struct {
	Tag        string            `json:"tag"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	Kids       []*RawElement     `json:"children,omitempty"`
	Own        string            `json:"ownText,omitempty"`
	Content    string            `json:"text,omitempty"`
	Hidden     bool              `json:"hidden,omitempty"`
	Box        *Rect             `json:"rect,omitempty"`
	MarkupSize int               `json:"markup,omitempty"`
}

var _ Element = (*RawElement)(nil)

func (e *RawElement) TagName() string { return e.Tag }

func (e *RawElement) Attr(name string) string {
	if e.Attrs == nil {
		return ""
	}
	return e.Attrs[name]
}

func (e *RawElement) Children() []Element {
	out := make([]Element, 0, len(e.Kids))
	for _, k := range e.Kids {
		if k != nil {
			out = append(out, k)
		}
	}
	return out
}

func (e *RawElement) OwnText() string   { return e.Own }
func (e *RawElement) Text() string      { return e.Content }
func (e *RawElement) Visible() bool     { return !e.Hidden }
func (e *RawElement) Rect() *Rect       { return e.Box }
func (e *RawElement) MarkupLength() int { return e.MarkupSize }

// Snapshot is one materialized view of a rendered document.
type Snapshot struct {
	URL   string
	Title string

	// Root is the document body. A nil Root is an empty document.
	Root Element
}

// Provider supplies element-tree snapshots of rendered pages.
// Snapshot is the only pipeline step that may block.
type Provider interface {
	// Snapshot loads the URL and returns its current element tree.
	// The context controls timeout and cancellation.
	Snapshot(ctx context.Context, url string) (*Snapshot, error)

	// Close releases provider resources.
	Close() error
}

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch returns the (possibly rendered) HTML of the URL.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}
