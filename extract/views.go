package extract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/pagegraph"
)

// DefaultSummaryLength is the summary budget used when none is given.
const DefaultSummaryLength = 2000

// SectionMaxChars is the budget used when rendering a single section.
const SectionMaxChars = 50000

// Summary renders the title followed by each top-level heading of the main
// content and the first paragraph under it, within maxLen characters.
func Summary(doc *pagegraph.PageDocument, maxLen int) string {
	if doc == nil {
		return ""
	}
	if maxLen <= 0 {
		maxLen = DefaultSummaryLength
	}

	var units []unit
	add := func(n *pagegraph.ContentNode) {
		units = append(units, unit{node: n, index: len(units)})
	}
	if doc.Title != "" {
		add(&pagegraph.ContentNode{Kind: pagegraph.KindHeading, HeadingLevel: 1, Text: doc.Title})
	}

	waiting := false
	for _, u := range collect(doc.MainContent) {
		switch {
		case u.node.Kind == pagegraph.KindHeading && u.node.HeadingLevel <= 2:
			if u.node.Text == doc.Title && len(units) == 1 {
				waiting = true
				continue
			}
			add(u.node)
			waiting = true
		case prose(u.node) && waiting:
			add(u.node)
			waiting = false
		}
	}
	return render(units, maxLen, true, true).Content
}

// prose reports whether n reads as a paragraph: a <p>, or a container
// that holds running text.
func prose(n *pagegraph.ContentNode) bool {
	return n.Kind == pagegraph.KindParagraph || (n.Kind == pagegraph.KindContainer && n.Text != "")
}

// Section renders the first heading whose text contains name, ignoring
// case, together with everything up to the next heading of the same or a
// higher level. It reports false when no heading matches.
func Section(doc *pagegraph.PageDocument, name string) (*pagegraph.ExtractionResult, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if doc == nil || name == "" {
		return nil, false
	}

	units := collect(append(slices.Clip(doc.MainContent), doc.Supplementary...))
	start := slices.IndexFunc(units, func(u unit) bool {
		return u.node.Kind == pagegraph.KindHeading && strings.Contains(strings.ToLower(u.node.Text), name)
	})
	if start < 0 {
		return nil, false
	}

	level := units[start].node.HeadingLevel
	end := len(units)
	for i := start + 1; i < len(units); i++ {
		if n := units[i].node; n.Kind == pagegraph.KindHeading && n.HeadingLevel <= level {
			end = i
			break
		}
	}
	return render(units[start:end], SectionMaxChars, true, true), true
}

// Overview describes the page: title, URL, size, structure and an outline
// of its level-1 and level-2 headings.
func Overview(doc *pagegraph.PageDocument) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", doc.Title)
	fmt.Fprintf(&b, "URL: %s\n", doc.URL)
	fmt.Fprintf(&b, "Words: %d\n", doc.PageMeta.TotalWords)
	fmt.Fprintf(&b, "Reading time: %d min\n", doc.PageMeta.EstimatedReadingMinutes)
	fmt.Fprintf(&b, "Structure score: %.2f\n", doc.PageMeta.StructureScore)

	var outline []string
	for _, u := range collect(append(slices.Clip(doc.MainContent), doc.Supplementary...)) {
		n := u.node
		if n.Kind != pagegraph.KindHeading || n.HeadingLevel > 2 || n.Text == "" {
			continue
		}
		outline = append(outline, strings.Repeat("  ", n.HeadingLevel-1)+"- "+n.Text)
	}
	if len(outline) > 0 {
		b.WriteString("Outline:\n")
		for _, line := range outline {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
