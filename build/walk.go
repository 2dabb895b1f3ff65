package build

import (
	"strings"

	"github.com/fwojciec/pagegraph"
)

// walker converts indexed regions into ContentNode trees.
type walker struct {
	maxDepth int
	excluded map[*info]bool
}

// region builds the tree rooted at r.
func (w *walker) region(r *info, inMain bool) []*pagegraph.ContentNode {
	if r == nil {
		return nil
	}
	return w.nodes(r, 0, inMain)
}

// nodes converts n into at most one node. A wordless node that is neither
// an image nor a table is dropped, and any surviving children (images,
// tables) are hoisted in its place.
func (w *walker) nodes(n *info, depth int, inMain bool) []*pagegraph.ContentNode {
	if depth > w.maxDepth {
		return nil
	}

	kind, level := classify(n.tag)
	node := &pagegraph.ContentNode{
		Kind:         kind,
		TagName:      n.tag,
		HeadingLevel: level,
		Text:         pagegraph.NormalizeSpace(n.el.Text()),
		Meta: pagegraph.NodeMeta{
			Locator:       n.locator,
			Importance:    pagegraph.NeutralImportance,
			Depth:         depth,
			IsMainContent: inMain,
			Rect:          rect(n.el.Rect()),
		},
	}
	if kind == pagegraph.KindImage && node.Text == "" {
		node.Text = pagegraph.NormalizeSpace(n.el.Attr("alt"))
	}
	node.Meta.WordCount = pagegraph.CountWords(node.Text)
	if own := pagegraph.NormalizeSpace(n.el.OwnText()); own != node.Text {
		node.OwnText = own
	}

	for _, c := range n.children {
		if w.excluded[c] {
			continue
		}
		node.Children = append(node.Children, w.nodes(c, depth+1, inMain)...)
	}

	if node.Meta.WordCount == 0 && kind != pagegraph.KindImage && kind != pagegraph.KindTable {
		return node.Children
	}
	return []*pagegraph.ContentNode{node}
}

// classify maps an element tag to a node kind and heading level.
func classify(tag string) (pagegraph.NodeKind, int) {
	if level := headingLevel(tag); level > 0 {
		return pagegraph.KindHeading, level
	}
	switch tag {
	case "p":
		return pagegraph.KindParagraph, 0
	case "ul", "ol":
		return pagegraph.KindList, 0
	case "li":
		return pagegraph.KindListItem, 0
	case "table":
		return pagegraph.KindTable, 0
	case "pre", "code":
		return pagegraph.KindCode, 0
	case "blockquote":
		return pagegraph.KindBlockquote, 0
	case "a":
		return pagegraph.KindLink, 0
	case "em", "i":
		return pagegraph.KindEmphasis, 0
	case "strong", "b":
		return pagegraph.KindStrong, 0
	case "img":
		return pagegraph.KindImage, 0
	case "span", "small", "label", "time", "abbr", "mark", "sub", "sup", "cite", "q":
		return pagegraph.KindText, 0
	}
	return pagegraph.KindContainer, 0
}

// headingLevel returns 1-6 for h1-h6 and 0 otherwise.
func headingLevel(tag string) int {
	if len(tag) != 2 || !strings.HasPrefix(tag, "h") {
		return 0
	}
	if l := int(tag[1] - '0'); l >= 1 && l <= 6 {
		return l
	}
	return 0
}

func rect(r *pagegraph.Rect) *pagegraph.Rect {
	if r == nil {
		return nil
	}
	out := *r
	if out.Area == 0 {
		out.Area = out.Width * out.Height
	}
	return &out
}
