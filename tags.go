package pagegraph

// nonContentTags never contribute content; their subtrees are skipped.
var nonContentTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
	"meta":     true,
	"link":     true,
	"iframe":   true,
	"object":   true,
	"embed":    true,
	"video":    true,
	"audio":    true,
	"canvas":   true,
	"svg":      true,
}

// blockTags start a new line of text when rendered.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "dd": true, "details": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "summary": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true,
	"tr": true, "ul": true, "br": true,
}

// IsNonContentTag reports whether elements with this tag are excluded from
// content, including their subtree.
func IsNonContentTag(tag string) bool {
	return nonContentTags[tag]
}

// IsBlockTag reports whether tag is block-level.
func IsBlockTag(tag string) bool {
	return blockTags[tag]
}
