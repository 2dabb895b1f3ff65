package pagegraph

import (
	"math"
	"strings"
)

// NodeKind classifies a content node.
type NodeKind string

// Content node kinds.
const (
	KindHeading    NodeKind = "heading"
	KindParagraph  NodeKind = "paragraph"
	KindList       NodeKind = "list"
	KindListItem   NodeKind = "list-item"
	KindTable      NodeKind = "table"
	KindCode       NodeKind = "code"
	KindBlockquote NodeKind = "blockquote"
	KindLink       NodeKind = "link"
	KindEmphasis   NodeKind = "emphasis"
	KindStrong     NodeKind = "strong"
	KindImage      NodeKind = "image"
	KindContainer  NodeKind = "container"
	KindText       NodeKind = "text"
)

// NeutralImportance is the score every node carries before scoring.
const NeutralImportance = 0.5

// Rect is a rendered bounding box.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
}

// NewRect returns a Rect with its area filled in.
func NewRect(width, height float64) *Rect {
	return &Rect{Width: width, Height: height, Area: width * height}
}

// NodeMeta carries position and scoring data for a ContentNode.
type NodeMeta struct {
	Locator       string  `json:"locator"`
	Importance    float64 `json:"importance"`
	WordCount     int     `json:"wordCount"`
	Depth         int     `json:"depth"`
	IsMainContent bool    `json:"isMainContent"`
	Rect          *Rect   `json:"rect,omitempty"`
}

// ContentNode is one content unit of a PageDocument.
// Children are owned by their parent; trees never share nodes.
// Text covers the whole subtree. OwnText is the part that sits directly in
// the element, outside any child, and is empty when it equals Text.
type ContentNode struct {
	Kind         NodeKind       `json:"kind"`
	TagName      string         `json:"tagName"`
	HeadingLevel int            `json:"headingLevel,omitempty"`
	Text         string         `json:"text"`
	OwnText      string         `json:"ownText,omitempty"`
	Children     []*ContentNode `json:"children,omitempty"`
	Meta         NodeMeta       `json:"meta"`
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (n *ContentNode) Walk(fn func(node *ContentNode) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of n.
func (n *ContentNode) Clone() *ContentNode {
	if n == nil {
		return nil
	}
	c := *n
	if n.Meta.Rect != nil {
		r := *n.Meta.Rect
		c.Meta.Rect = &r
	}
	if n.Children != nil {
		c.Children = make([]*ContentNode, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// CountWords returns the number of whitespace-separated words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// NormalizeSpace collapses runs of whitespace into single spaces and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clamp01 clamps f into [0, 1]. NaN clamps to 0.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
