// Package extract renders bounded text from scored page documents.
package extract

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pagegraph"
)

// bucketWidth is the importance band width used by mixed ordering.
const bucketWidth = 0.2

// Code fence markers used by structured rendering.
const (
	fenceOpen  = "```\n"
	fenceClose = "\n```"
)

// adaptiveFill is the filled fraction of the budget below which the node
// that overflows is truncated instead of dropped.
const adaptiveFill = 0.95

// unit is one renderable block collected from the document.
type unit struct {
	node  *pagegraph.ContentNode
	index int
}

// Extract selects, orders and renders nodes of doc within opts.MaxChars.
// A non-positive budget is raised to pagegraph.MinViableChars.
func Extract(doc *pagegraph.PageDocument, opts pagegraph.ExtractOptions) *pagegraph.ExtractionResult {
	if doc == nil {
		return &pagegraph.ExtractionResult{}
	}

	roots := doc.MainContent
	if !opts.MainContentOnly {
		roots = append(slices.Clip(roots), doc.Supplementary...)
	}

	var selected []unit
	for _, u := range collect(roots) {
		if u.node.Kind == pagegraph.KindHeading && len(opts.Sections) > 0 && !matchesAny(u.node.Text, opts.Sections) {
			continue
		}
		if u.node.Meta.Importance < opts.MinImportance {
			continue
		}
		selected = append(selected, u)
	}

	order(selected, opts.PriorityOrder)
	return render(selected, opts.MaxChars, opts.IncludeStructure, opts.AdaptiveChunking)
}

// collect flattens roots into renderable blocks in document order. Blocks
// are not descended into, so no text is emitted twice. Containers and lists
// contribute their children, or themselves when they have none. A container
// whose own text runs between inline children is emitted whole; otherwise
// its own text becomes a block ahead of its children.
func collect(roots []*pagegraph.ContentNode) []unit {
	var units []unit
	var visit func(n *pagegraph.ContentNode)
	visit = func(n *pagegraph.ContentNode) {
		switch n.Kind {
		case pagegraph.KindContainer, pagegraph.KindList:
			if len(n.Children) == 0 || (n.OwnText != "" && inlineOnly(n.Children)) {
				break
			}
			if n.OwnText != "" {
				units = append(units, unit{node: ownText(n), index: len(units)})
			}
			for _, c := range n.Children {
				visit(c)
			}
			return
		}
		units = append(units, unit{node: n, index: len(units)})
	}
	for _, n := range roots {
		visit(n)
	}
	return units
}

// inlineOnly reports whether every node is phrasing content that reads as
// part of its parent's sentence.
func inlineOnly(nodes []*pagegraph.ContentNode) bool {
	for _, n := range nodes {
		switch n.Kind {
		case pagegraph.KindLink, pagegraph.KindEmphasis, pagegraph.KindStrong, pagegraph.KindText:
		default:
			return false
		}
	}
	return true
}

// ownText returns a childless text node holding the text n carries outside
// its children, scored as n.
func ownText(n *pagegraph.ContentNode) *pagegraph.ContentNode {
	meta := n.Meta
	meta.WordCount = pagegraph.CountWords(n.OwnText)
	return &pagegraph.ContentNode{
		Kind:    pagegraph.KindText,
		TagName: n.TagName,
		Text:    n.OwnText,
		Meta:    meta,
	}
}

func matchesAny(text string, names []string) bool {
	text = strings.ToLower(text)
	for _, name := range names {
		if strings.Contains(text, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// order sorts units in place. Mixed ordering sorts by 0.2-wide importance
// band, highest first, then by document position.
func order(units []unit, priority pagegraph.PriorityOrder) {
	switch priority {
	case pagegraph.PriorityImportance:
		slices.SortStableFunc(units, func(a, b unit) int {
			switch {
			case a.node.Meta.Importance > b.node.Meta.Importance:
				return -1
			case a.node.Meta.Importance < b.node.Meta.Importance:
				return 1
			}
			return a.index - b.index
		})
	case pagegraph.PriorityMixed:
		slices.SortStableFunc(units, func(a, b unit) int {
			if ba, bb := bucket(a.node.Meta.Importance), bucket(b.node.Meta.Importance); ba != bb {
				return bb - ba
			}
			return a.index - b.index
		})
	}
}

func bucket(importance float64) int {
	b := int(pagegraph.Clamp01(importance) / bucketWidth)
	return min(b, int(1/bucketWidth)-1)
}

// block renders one unit. It returns "" for units with nothing to show.
func block(n *pagegraph.ContentNode, structured bool) string {
	text := strings.TrimSpace(n.Text)
	if !structured {
		return text
	}
	switch n.Kind {
	case pagegraph.KindHeading:
		if text == "" {
			return ""
		}
		return strings.Repeat("#", max(n.HeadingLevel, 1)) + " " + text
	case pagegraph.KindListItem:
		if text == "" {
			return ""
		}
		return "- " + text
	case pagegraph.KindCode:
		if text == "" {
			return ""
		}
		return "```\n" + text + "\n```"
	case pagegraph.KindBlockquote:
		if text == "" {
			return ""
		}
		return "> " + strings.ReplaceAll(text, "\n", "\n> ")
	case pagegraph.KindTable:
		return fmt.Sprintf("[Table: %d words]", n.Meta.WordCount)
	case pagegraph.KindImage:
		if text == "" {
			return ""
		}
		return "[Image: " + text + "]"
	}
	return text
}

// cutBlock truncates a rendered block to budget runes. Code blocks are cut
// inside their fence so the fence stays closed.
func cutBlock(n *pagegraph.ContentNode, text string, budget int, structured bool) string {
	if !structured || n.Kind != pagegraph.KindCode {
		return Truncate(text, budget)
	}
	inner := Truncate(strings.TrimSpace(n.Text), budget-utf8.RuneCountInString(fenceOpen+fenceClose))
	if inner == "" {
		return ""
	}
	return fenceOpen + inner + fenceClose
}

// render accumulates blocks until the budget is exhausted.
func render(units []unit, maxChars int, structured, adaptive bool) *pagegraph.ExtractionResult {
	if maxChars <= 0 {
		maxChars = pagegraph.MinViableChars
	}
	sep := "\n"
	if structured {
		sep = "\n\n"
	}

	res := &pagegraph.ExtractionResult{}
	var b strings.Builder
	var used int
	var lastSection string

	for i, u := range units {
		text := block(u.node, structured)
		if text == "" {
			continue
		}
		prefix := ""
		if used > 0 {
			prefix = sep
		}
		size := utf8.RuneCountInString(prefix) + utf8.RuneCountInString(text)

		if used+size > maxChars {
			res.Truncated = true
			if adaptive && float64(used) < adaptiveFill*float64(maxChars) {
				budget := maxChars - used - utf8.RuneCountInString(prefix)
				if cut := cutBlock(u.node, text, budget, structured); cut != "" {
					b.WriteString(prefix)
					b.WriteString(cut)
					used += utf8.RuneCountInString(prefix) + utf8.RuneCountInString(cut)
					res.NodesIncluded++
					if u.node.Kind == pagegraph.KindHeading {
						res.SectionsIncluded++
						lastSection = u.node.Text
					}
					i++
				}
			}
			res.TruncationInfo = &pagegraph.TruncationInfo{
				RemainingNodes: len(units) - i,
				LastSection:    lastSection,
			}
			break
		}

		b.WriteString(prefix)
		b.WriteString(text)
		used += size
		res.NodesIncluded++
		if u.node.Kind == pagegraph.KindHeading {
			res.SectionsIncluded++
			lastSection = u.node.Text
		}
	}

	res.Content = b.String()
	res.CharsExtracted = used
	return res
}
