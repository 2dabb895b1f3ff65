// Package score assigns importance scores to built page documents.
package score

import (
	"strings"

	"github.com/fwojciec/pagegraph"
)

// DefaultKeywords are the high-signal terms that raise a node's importance
// when they appear in its text or in the heading of its section.
var DefaultKeywords = []string{
	"installation",
	"getting started",
	"pricing",
	"features",
	"faq",
	"overview",
	"troubleshooting",
	"requirements",
	"usage",
	"example",
	"summary",
	"conclusion",
}

// tagWeights holds base weights for non-heading tags.
var tagWeights = map[string]float64{
	"p":          0.7,
	"blockquote": 0.7,
	"article":    1.0,
	"main":       0.95,
	"pre":        0.75,
	"code":       0.75,
	"li":         0.6,
	"ul":         0.6,
	"ol":         0.6,
	"dl":         0.6,
	"table":      0.65,
	"img":        0.5,
	"figure":     0.55,
	"em":         0.55,
	"i":          0.55,
	"strong":     0.55,
	"b":          0.55,
	"section":    0.6,
	"nav":        0.3,
	"footer":     0.3,
	"header":     0.35,
	"aside":      0.35,
	"a":          0.4,
	"button":     0.2,
	"input":      0.2,
	"select":     0.2,
	"textarea":   0.2,
	"form":       0.25,
}

// defaultWeight is the base weight of tags without an entry.
const defaultWeight = 0.5

// Ensure Scorer implements pagegraph.Scorer at compile time.
var _ pagegraph.Scorer = (*Scorer)(nil)

// Scorer computes importance from tag weight, position and content signals.
// Scores are recomputed from scratch on every call, so scoring a document
// twice yields the same result. Scorer is safe for concurrent use.
type Scorer struct {
	keywords []string
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithKeywords replaces the high-signal term list. Terms are matched
// case-insensitively as substrings.
func WithKeywords(keywords ...string) Option {
	return func(s *Scorer) {
		s.keywords = make([]string, 0, len(keywords))
		for _, k := range keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				s.keywords = append(s.keywords, k)
			}
		}
	}
}

// NewScorer creates a new Scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{keywords: DefaultKeywords}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns a scored copy of doc. The input is left untouched.
func (s *Scorer) Score(doc *pagegraph.PageDocument) *pagegraph.PageDocument {
	if doc == nil {
		return nil
	}
	out := doc.Clone()
	for _, roots := range [][]*pagegraph.ContentNode{out.MainContent, out.Supplementary, out.Navigation} {
		p := &pass{scorer: s}
		for i, n := range roots {
			p.visit(n, i, nil)
		}
	}
	return out
}

// pass carries section context through one region's pre-order traversal.
type pass struct {
	scorer *Scorer

	// headings is the open heading stack by level.
	headings []int
	section  string
}

func (p *pass) visit(n *pagegraph.ContentNode, index int, parent *pagegraph.ContentNode) {
	if n.Kind == pagegraph.KindHeading {
		for len(p.headings) > 0 && p.headings[len(p.headings)-1] >= n.HeadingLevel {
			p.headings = p.headings[:len(p.headings)-1]
		}
		p.headings = append(p.headings, n.HeadingLevel)
		p.section = strings.ToLower(n.Text)
	}

	n.Meta.Importance = p.score(n, index, parent)
	for i, c := range n.Children {
		p.visit(c, i, n)
	}
}

func (p *pass) score(n *pagegraph.ContentNode, index int, parent *pagegraph.ContentNode) float64 {
	v := baseWeight(n)

	if n.Meta.IsMainContent {
		v *= 1.5
	}
	if index == 0 {
		v *= 1.1
	}
	if parent != nil {
		v = 0.8*v + 0.2*parent.Meta.Importance
	}

	switch words := n.Meta.WordCount; {
	case words > 100:
		v *= 1.3
	case words > 50:
		v *= 1.15
	case words < 10 && n.Kind != pagegraph.KindHeading:
		v *= 0.8
	}

	if p.hasKeyword(strings.ToLower(n.Text)) || p.hasKeyword(p.section) {
		v *= 1.25
	}

	if n.Kind == pagegraph.KindHeading {
		v *= 1.0 + float64(7-n.HeadingLevel)*0.1
	}

	switch depth := n.Meta.Depth; {
	case depth > 6:
		v *= 0.7
	case depth > 4:
		v *= 0.85
	}

	if len(p.headings) > 4 {
		v *= 0.8
	}

	if r := n.Meta.Rect; r != nil && r.Area < 100 {
		v *= 0.7
	}

	if linkHeavy(n) {
		v *= 0.5
	}

	switch n.Kind {
	case pagegraph.KindCode:
		if v < 0.75 {
			v = 0.75
		}
	case pagegraph.KindList:
		if n.Meta.IsMainContent {
			v *= 1.1
		}
	case pagegraph.KindTable:
		if n.Meta.IsMainContent && n.Meta.WordCount > 50 {
			v *= 1.2
		} else {
			v *= 0.8
		}
	}

	return pagegraph.Clamp01(v)
}

func (p *pass) hasKeyword(text string) bool {
	if text == "" {
		return false
	}
	for _, k := range p.scorer.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func baseWeight(n *pagegraph.ContentNode) float64 {
	if n.Kind == pagegraph.KindHeading && n.HeadingLevel >= 1 && n.HeadingLevel <= 6 {
		return 1.0 - float64(n.HeadingLevel-1)*0.07
	}
	if w, ok := tagWeights[n.TagName]; ok {
		return w
	}
	return defaultWeight
}

// linkHeavy reports whether more than half of n's descendants are links.
func linkHeavy(n *pagegraph.ContentNode) bool {
	var total, links int
	for _, c := range n.Children {
		c.Walk(func(d *pagegraph.ContentNode) bool {
			total++
			if d.Kind == pagegraph.KindLink {
				links++
			}
			return true
		})
	}
	return total > 0 && 2*links > total
}
