package build

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// semanticThreshold is the content score a <main>/<article> region must
// exceed to win outright.
const semanticThreshold = 50

// densityMinChars is the text length a density-fallback candidate needs.
const densityMinChars = 100

// mainIdentifiers are id/class names conventionally used for main content.
var mainIdentifiers = map[string]bool{
	"content":         true,
	"main":            true,
	"main-content":    true,
	"maincontent":     true,
	"article":         true,
	"article-body":    true,
	"article-content": true,
	"post-content":    true,
	"entry-content":   true,
	"page-content":    true,
	"primary":         true,
}

var (
	navPattern  = regexp.MustCompile(`(^|[-_])(nav|navbar|navigation|menu|breadcrumbs?)([-_]|$)`)
	sidePattern = regexp.MustCompile(`(^|[-_])(sidebar|side-bar|aside|related)([-_]|$)`)
)

// densityTags are block containers considered by the density fallback.
var densityTags = map[string]bool{
	"div":     true,
	"section": true,
	"article": true,
	"main":    true,
	"td":      true,
}

// detectMain picks the main-content region: a semantic region scoring above
// the threshold, then a conventional identifier, then the densest block, and
// finally the body.
func detectMain(all []*info, body *info) (*info, float64) {
	for _, n := range all {
		if n.tag == "main" || n.tag == "article" || role(n) == "main" {
			if s := contentScore(n); s > semanticThreshold {
				return n, s
			}
		}
	}

	for _, n := range all {
		if n == body || n.el.Text() == "" {
			continue
		}
		if matchesIdentifier(n, func(token string) bool { return mainIdentifiers[token] }) {
			return n, contentScore(n)
		}
	}

	var best *info
	var bestScore float64
	for _, n := range all {
		if !densityTags[n.tag] || utf8.RuneCountInString(n.el.Text()) <= densityMinChars {
			continue
		}
		if s := contentScore(n); best == nil || s > bestScore {
			best, bestScore = n, s
		}
	}
	if best != nil {
		return best, bestScore
	}
	return body, contentScore(body)
}

// detectNavigation collects outermost navigation regions anywhere in the
// document, except regions enclosing the main content.
func detectNavigation(all []*info, main *info) []*info {
	var roots []*info
	for _, n := range all {
		if !isNavigation(n) || main.within(n) || withinAny(n, roots) {
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

// detectSupplementary collects outermost complementary regions that lie
// outside both the main content and navigation.
func detectSupplementary(all []*info, main *info, navigation []*info) []*info {
	var roots []*info
	for _, n := range all {
		if !isSupplementary(n) || n.within(main) || main.within(n) {
			continue
		}
		if withinAny(n, navigation) || withinAny(n, roots) {
			continue
		}
		roots = append(roots, n)
	}
	return roots
}

func isNavigation(n *info) bool {
	if n.tag == "nav" {
		return true
	}
	switch role(n) {
	case "navigation", "menu", "menubar":
		return true
	}
	return matchesIdentifier(n, navPattern.MatchString)
}

func isSupplementary(n *info) bool {
	return n.tag == "aside" || role(n) == "complementary" || matchesIdentifier(n, sidePattern.MatchString)
}

func withinAny(n *info, roots []*info) bool {
	for _, r := range roots {
		if n.within(r) {
			return true
		}
	}
	return false
}

func role(n *info) string {
	return strings.ToLower(strings.TrimSpace(n.el.Attr("role")))
}

// matchesIdentifier reports whether the element id or any class token
// satisfies match. Tokens are lowercased.
func matchesIdentifier(n *info, match func(token string) bool) bool {
	if id := strings.ToLower(strings.TrimSpace(n.el.Attr("id"))); id != "" && match(id) {
		return true
	}
	for _, class := range strings.Fields(strings.ToLower(n.el.Attr("class"))) {
		if match(class) {
			return true
		}
	}
	return false
}
