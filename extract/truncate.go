package extract

import (
	"strings"
	"unicode"
)

// Ellipsis marks a cut that did not end on a sentence boundary.
const Ellipsis = "…"

// Truncate shortens text to at most budget runes. It prefers to end after a
// sentence terminator in the last 30% of the budget, then at a word
// boundary past 80% of it, and otherwise cuts hard. Cuts that do not end a
// sentence carry an Ellipsis, which counts against the budget.
func Truncate(text string, budget int) string {
	if budget <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}

	floor := budget - int(0.3*float64(budget))
	for cut := budget; cut >= floor && cut > 0; cut-- {
		if isTerminator(runes[cut-1]) && runes[cut] == ' ' {
			return string(runes[:cut])
		}
	}

	limit := budget - 1
	if limit == 0 {
		return Ellipsis
	}
	wordFloor := int(0.8 * float64(budget))
	for i := limit; i >= wordFloor && i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			if head := strings.TrimRightFunc(string(runes[:i]), unicode.IsSpace); head != "" {
				return head + Ellipsis
			}
			break
		}
	}
	return string(runes[:limit]) + Ellipsis
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
