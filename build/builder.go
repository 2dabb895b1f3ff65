// Package build turns element-tree snapshots into unscored content graphs.
package build

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/fwojciec/pagegraph"
)

// Structural limits applied to every snapshot.
const (
	DefaultMaxDepth    = 64
	DefaultMaxElements = 100000
)

// WordsPerMinute is the reading speed used for reading-time estimates.
const WordsPerMinute = 200

// Ensure Builder implements pagegraph.Builder at compile time.
var _ pagegraph.Builder = (*Builder)(nil)

// Builder walks a snapshot once, detects the main-content, navigation and
// supplementary regions, and emits a PageDocument with neutral scores.
// Builder is safe for concurrent use.
type Builder struct {
	maxDepth    int
	maxElements int
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxDepth bounds how deep the element tree is walked. Subtrees below
// the limit are dropped and the partial tree built so far is kept.
func WithMaxDepth(n int) Option {
	return func(b *Builder) {
		b.maxDepth = n
	}
}

// WithMaxElements bounds how many elements are indexed per snapshot.
func WithMaxElements(n int) Option {
	return func(b *Builder) {
		b.maxElements = n
	}
}

// NewBuilder creates a new Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		maxDepth:    DefaultMaxDepth,
		maxElements: DefaultMaxElements,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build converts a snapshot into an unscored PageDocument. A nil or empty
// snapshot yields a document with empty node lists and zero metadata.
func (b *Builder) Build(snap *pagegraph.Snapshot) *pagegraph.PageDocument {
	doc := &pagegraph.PageDocument{}
	if snap == nil {
		return doc
	}
	doc.URL = snap.URL
	doc.Title = snap.Title
	if snap.Root == nil || !snap.Root.Visible() {
		return doc
	}

	idx := &indexer{maxDepth: b.maxDepth, maxElements: b.maxElements}
	body := idx.index(snap.Root, nil, snap.Root.TagName(), 0)
	if body == nil {
		return doc
	}

	main, mainScore := detectMain(idx.all, body)
	navigation := detectNavigation(idx.all, main)
	supplementary := detectSupplementary(idx.all, main, navigation)

	excluded := make(map[*info]bool, len(navigation)+len(supplementary))
	for _, r := range navigation {
		excluded[r] = true
	}
	for _, r := range supplementary {
		excluded[r] = true
	}

	w := &walker{maxDepth: b.maxDepth, excluded: excluded}
	doc.MainContent = w.region(main, true)
	for _, r := range supplementary {
		doc.Supplementary = append(doc.Supplementary, w.region(r, false)...)
	}
	for _, r := range navigation {
		doc.Navigation = append(doc.Navigation, w.region(r, false)...)
	}

	doc.PageMeta = pageMeta(body, idx.all)
	if len(doc.MainContent) > 0 {
		doc.PageMeta.MainContentArea = pagegraph.MainContentArea{
			Locator:    main.locator,
			Confidence: pagegraph.Clamp01(mainScore / 100),
		}
	}
	return doc
}

// info is an indexed visible content element.
type info struct {
	el       pagegraph.Element
	tag      string
	locator  string
	parent   *info
	children []*info

	// Descendant tag counts, excluding the element itself.
	paragraphs int
	headings   int
	links      int
}

// indexer records visible content elements in pre-order.
type indexer struct {
	maxDepth    int
	maxElements int
	all         []*info
}

func (x *indexer) index(el pagegraph.Element, parent *info, locator string, depth int) *info {
	if el == nil || depth > x.maxDepth || len(x.all) >= x.maxElements {
		return nil
	}
	tag := el.TagName()
	if !el.Visible() || pagegraph.IsNonContentTag(tag) {
		return nil
	}

	n := &info{el: el, tag: tag, locator: locator, parent: parent}
	x.all = append(x.all, n)

	for i, child := range el.Children() {
		if child == nil {
			continue
		}
		loc := locator + " > " + child.TagName() + ":nth-child(" + strconv.Itoa(i+1) + ")"
		c := x.index(child, n, loc, depth+1)
		if c == nil {
			continue
		}
		n.children = append(n.children, c)
		n.paragraphs += c.paragraphs
		n.headings += c.headings
		n.links += c.links
		switch {
		case c.tag == "p":
			n.paragraphs++
		case headingLevel(c.tag) > 0:
			n.headings++
		case c.tag == "a":
			n.links++
		}
	}
	return n
}

// within reports whether n is a or a descendant of a.
func (n *info) within(a *info) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == a {
			return true
		}
	}
	return false
}

// contentScore rates how likely an element is to hold primary content.
func contentScore(n *info) float64 {
	var score float64
	if markup := n.el.MarkupLength(); markup > 0 {
		score = 100 * float64(utf8.RuneCountInString(n.el.Text())) / float64(markup)
	}
	score += 10*float64(n.paragraphs) + 5*float64(n.headings)
	if n.links > 10 {
		score /= 2
	}
	return score
}

func pageMeta(body *info, all []*info) pagegraph.PageMeta {
	text := body.el.Text()
	meta := pagegraph.PageMeta{
		TotalWords: pagegraph.CountWords(text),
	}
	meta.EstimatedReadingMinutes = int(math.Ceil(float64(meta.TotalWords) / WordsPerMinute))
	if markup := body.el.MarkupLength(); markup > 0 {
		meta.ContentDensity = pagegraph.Clamp01(float64(utf8.RuneCountInString(text)) / float64(markup))
	}
	meta.StructureScore = structureScore(all)
	return meta
}

// structureScore rates the heading/paragraph hierarchy in tenths so the
// additive steps stay exact.
func structureScore(all []*info) float64 {
	var h1, h2, h3, paragraphs int
	for _, n := range all {
		switch n.tag {
		case "h1":
			h1++
		case "h2":
			h2++
		case "h3":
			h3++
		case "p":
			paragraphs++
		}
	}

	var tenths int
	if h1 == 1 {
		tenths += 3
	}
	if h2 > 0 {
		tenths += 3
	}
	if h3 > 0 {
		tenths += 2
	}
	if paragraphs > 2*h2 {
		tenths += 2
	}
	return math.Min(float64(tenths), 10) / 10
}
