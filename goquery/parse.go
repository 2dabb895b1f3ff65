// Package goquery builds element-tree snapshots from static HTML.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagegraph"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// DefaultMaxDepth bounds element nesting during conversion.
const DefaultMaxDepth = 256

// Parse converts HTML into a Snapshot rooted at the document body.
// Empty input yields an empty snapshot rather than an error.
func Parse(rawHTML string, pageURL string) (*pagegraph.Snapshot, error) {
	snap := &pagegraph.Snapshot{URL: pageURL}
	if strings.TrimSpace(rawHTML) == "" {
		return snap, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagegraph.Errorf(pagegraph.EINVALID, "failed to parse HTML: %v", err)
	}

	snap.Title = pagegraph.NormalizeSpace(doc.Find("title").First().Text())
	if snap.Title == "" {
		snap.Title = metadataTitle(rawHTML, pageURL)
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return snap, nil
	}
	snap.Root = convert(body.Get(0), 0)
	return snap, nil
}

// metadataTitle falls back to readability's title heuristics (og:title,
// twitter:title, JSON-LD, first heading).
func metadataTitle(rawHTML string, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		u = nil
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return ""
	}
	return pagegraph.NormalizeSpace(article.Title)
}

// convert copies an element node and its subtree into a RawElement,
// computing visibility, visible text and markup length.
func convert(n *html.Node, depth int) *pagegraph.RawElement {
	el := &pagegraph.RawElement{
		Tag:   strings.ToLower(n.Data),
		Attrs: attrs(n),
	}
	el.Hidden = isHidden(el)

	var own, text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			own.WriteString(c.Data)
			text.WriteString(c.Data)
		case html.ElementNode:
			if depth >= DefaultMaxDepth {
				continue
			}
			child := convert(c, depth+1)
			el.Kids = append(el.Kids, child)
			if child.Hidden || pagegraph.IsNonContentTag(child.Tag) {
				continue
			}
			if pagegraph.IsBlockTag(child.Tag) {
				text.WriteString(" ")
				text.WriteString(child.Content)
				text.WriteString(" ")
			} else {
				text.WriteString(child.Content)
			}
		}
	}
	el.Own = pagegraph.NormalizeSpace(own.String())
	el.Content = pagegraph.NormalizeSpace(text.String())
	el.MarkupSize = markupLength(n)
	return el
}

func attrs(n *html.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[strings.ToLower(a.Key)] = a.Val
	}
	return m
}

// isHidden reports whether an element would have no rendered box.
// Only inline styles are visible to a static parser.
func isHidden(el *pagegraph.RawElement) bool {
	if _, ok := el.Attrs["hidden"]; ok {
		return true
	}
	if strings.EqualFold(el.Attr("aria-hidden"), "true") {
		return true
	}
	if el.Tag == "template" {
		return true
	}
	if el.Tag == "input" && strings.EqualFold(el.Attr("type"), "hidden") {
		return true
	}
	style := strings.ToLower(strings.Join(strings.Fields(el.Attr("style")), ""))
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

// markupLength returns the length of the node's serialized HTML.
func markupLength(n *html.Node) int {
	var w countingWriter
	if err := html.Render(&w, n); err != nil {
		return 0
	}
	return int(w)
}

type countingWriter int

func (w *countingWriter) Write(p []byte) (int, error) {
	*w += countingWriter(len(p))
	return len(p), nil
}
