package extract_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/build"
	"github.com/fwojciec/pagegraph/extract"
	"github.com/fwojciec/pagegraph/goquery"
	"github.com/fwojciec/pagegraph/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productHTML = `<html><head><title>Product</title></head><body>
<nav><a href="/">Home</a> <a href="/pricing">Pricing</a></nav>
<main>
  <h1>Product</h1>
  <p>Our product helps teams ship faster with fewer meetings and less stress.</p>
  <h2>Pricing Details</h2>
  <p>Basic plan costs ten dollars per month for each active user.</p>
  <h3>Discounts</h3>
  <p>Students save half on every plan when they verify their school email.</p>
  <p style="display:none">Secret enterprise discount code is HIDDEN123.</p>
  <h2>Support</h2>
  <p>Email us anytime and a human will answer within one business day.</p>
</main>
<aside><p>Customers also viewed our other fine products today.</p></aside>
</body></html>`

func buildScored(t *testing.T, html string) *pagegraph.PageDocument {
	t.Helper()
	snap, err := goquery.Parse(html, "https://example.com/product")
	require.NoError(t, err)
	return score.NewScorer().Score(build.NewBuilder().Build(snap))
}

func node(kind pagegraph.NodeKind, text string, importance float64) *pagegraph.ContentNode {
	return &pagegraph.ContentNode{
		Kind: kind,
		Text: text,
		Meta: pagegraph.NodeMeta{Importance: importance, WordCount: pagegraph.CountWords(text)},
	}
}

func heading(level int, text string, importance float64) *pagegraph.ContentNode {
	n := node(pagegraph.KindHeading, text, importance)
	n.HeadingLevel = level
	return n
}

func options(mutate func(o *pagegraph.ExtractOptions)) pagegraph.ExtractOptions {
	o := pagegraph.DefaultExtractOptions()
	o.MinImportance = 0
	mutate(&o)
	return o
}

func TestExtract_Budget(t *testing.T) {
	t.Parallel()

	doc := buildScored(t, productHTML)

	t.Run("never exceeds the requested budget", func(t *testing.T) {
		t.Parallel()

		for _, structured := range []bool{false, true} {
			for _, adaptive := range []bool{false, true} {
				for maxChars := 1; maxChars <= 400; maxChars += 7 {
					res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
						o.MaxChars = maxChars
						o.IncludeStructure = structured
						o.AdaptiveChunking = adaptive
					}))

					assert.LessOrEqual(t, utf8.RuneCountInString(res.Content), maxChars)
					assert.Equal(t, utf8.RuneCountInString(res.Content), res.CharsExtracted)
				}
			}
		}
	})

	t.Run("raises non-positive budgets to the minimum", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.MaxChars = -5 }))

		assert.NotEmpty(t, res.Content)
		assert.LessOrEqual(t, res.CharsExtracted, pagegraph.MinViableChars)
	})

	t.Run("returns nothing above the maximum score", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.MinImportance = 1.1 }))

		assert.Empty(t, res.Content)
		assert.Zero(t, res.NodesIncluded)
		assert.False(t, res.Truncated)
	})

	t.Run("never emits hidden text", func(t *testing.T) {
		t.Parallel()

		for _, structured := range []bool{false, true} {
			res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.IncludeStructure = structured }))

			assert.NotContains(t, res.Content, "HIDDEN123")
			assert.Contains(t, res.Content, "Basic plan costs ten dollars")
		}
	})

	t.Run("handles nil documents", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(nil, pagegraph.DefaultExtractOptions())

		assert.Empty(t, res.Content)
	})
}

func TestExtract_Truncation(t *testing.T) {
	t.Parallel()

	doc := &pagegraph.PageDocument{MainContent: []*pagegraph.ContentNode{
		heading(2, "Intro", 0.9),
		node(pagegraph.KindParagraph, "First sentence here. Second sentence is longer and keeps going for a while.", 0.9),
		node(pagegraph.KindParagraph, "tail", 0.9),
	}}

	t.Run("truncates the overflowing node once", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
			o.MaxChars = 40
			o.PriorityOrder = pagegraph.PriorityDOMOrder
		}))

		assert.Equal(t, "Intro\nFirst sentence here. Second…", res.Content)
		assert.Equal(t, 34, res.CharsExtracted)
		assert.Equal(t, 2, res.NodesIncluded)
		assert.Equal(t, 1, res.SectionsIncluded)
		assert.True(t, res.Truncated)
		assert.Equal(t, &pagegraph.TruncationInfo{RemainingNodes: 1, LastSection: "Intro"}, res.TruncationInfo)
	})

	t.Run("drops the overflowing node without adaptive chunking", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
			o.MaxChars = 40
			o.PriorityOrder = pagegraph.PriorityDOMOrder
			o.AdaptiveChunking = false
		}))

		assert.Equal(t, "Intro", res.Content)
		assert.True(t, res.Truncated)
		assert.Equal(t, 2, res.TruncationInfo.RemainingNodes)
	})

	t.Run("reports no truncation when everything fits", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.PriorityOrder = pagegraph.PriorityDOMOrder }))

		assert.False(t, res.Truncated)
		assert.Nil(t, res.TruncationInfo)
		assert.Equal(t, 3, res.NodesIncluded)
	})
}

func TestExtract_Ordering(t *testing.T) {
	t.Parallel()

	doc := &pagegraph.PageDocument{MainContent: []*pagegraph.ContentNode{
		node(pagegraph.KindParagraph, "alpha", 0.61),
		node(pagegraph.KindParagraph, "beta", 0.75),
		node(pagegraph.KindParagraph, "gamma", 0.79),
		node(pagegraph.KindParagraph, "delta", 0.95),
	}}

	tests := []struct {
		order pagegraph.PriorityOrder
		want  string
	}{
		{pagegraph.PriorityDOMOrder, "alpha\nbeta\ngamma\ndelta"},
		{pagegraph.PriorityImportance, "delta\ngamma\nbeta\nalpha"},
		{pagegraph.PriorityMixed, "delta\nalpha\nbeta\ngamma"},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			t.Parallel()

			res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.PriorityOrder = tt.order }))

			assert.Equal(t, tt.want, res.Content)
		})
	}

	t.Run("mixed ordering keeps document order within a band", func(t *testing.T) {
		t.Parallel()

		reversed := &pagegraph.PageDocument{MainContent: []*pagegraph.ContentNode{
			doc.MainContent[3], doc.MainContent[2], doc.MainContent[1], doc.MainContent[0],
		}}

		res := extract.Extract(reversed, options(func(o *pagegraph.ExtractOptions) {}))

		assert.Equal(t, "delta\ngamma\nbeta\nalpha", res.Content)
	})
}

func TestExtract_Filters(t *testing.T) {
	t.Parallel()

	doc := &pagegraph.PageDocument{
		MainContent: []*pagegraph.ContentNode{
			heading(2, "Pricing Details", 0.9),
			node(pagegraph.KindParagraph, "ten dollars", 0.8),
			heading(2, "History", 0.9),
			node(pagegraph.KindParagraph, "founded long ago", 0.3),
		},
		Supplementary: []*pagegraph.ContentNode{
			node(pagegraph.KindParagraph, "related links", 0.6),
		},
	}

	t.Run("drops headings outside the requested sections", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
			o.Sections = []string{"PRICING"}
			o.PriorityOrder = pagegraph.PriorityDOMOrder
		}))

		assert.Equal(t, "Pricing Details\nten dollars\nfounded long ago\nrelated links", res.Content)
	})

	t.Run("drops nodes below the minimum importance", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
			o.MinImportance = 0.5
			o.PriorityOrder = pagegraph.PriorityDOMOrder
		}))

		assert.NotContains(t, res.Content, "founded")
		assert.Contains(t, res.Content, "related links")
	})

	t.Run("limits output to the main content", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.MainContentOnly = true }))

		assert.NotContains(t, res.Content, "related links")
		assert.Equal(t, 2, res.SectionsIncluded)
	})
}

func TestExtract_Structure(t *testing.T) {
	t.Parallel()

	list := node(pagegraph.KindList, "first", 0.7)
	list.Children = []*pagegraph.ContentNode{node(pagegraph.KindListItem, "first", 0.7)}
	doc := &pagegraph.PageDocument{MainContent: []*pagegraph.ContentNode{
		heading(2, "Setup", 0.9),
		list,
		node(pagegraph.KindCode, "go build", 0.8),
		node(pagegraph.KindBlockquote, "quoted", 0.7),
		node(pagegraph.KindTable, "a b c", 0.7),
		node(pagegraph.KindImage, "diagram", 0.7),
		node(pagegraph.KindTable, "", 0.7),
	}}

	t.Run("renders markdown markers", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
			o.IncludeStructure = true
			o.PriorityOrder = pagegraph.PriorityDOMOrder
		}))

		want := strings.Join([]string{
			"## Setup",
			"- first",
			"```\ngo build\n```",
			"> quoted",
			"[Table: 3 words]",
			"[Image: diagram]",
			"[Table: 0 words]",
		}, "\n\n")
		assert.Equal(t, want, res.Content)
	})

	t.Run("renders plain text and skips empty nodes", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.PriorityOrder = pagegraph.PriorityDOMOrder }))

		assert.Equal(t, "Setup\nfirst\ngo build\nquoted\na b c\ndiagram", res.Content)
	})
}

const releaseHTML = `<html><body><main>
<h1>Release notes</h1>
<div>Version two ships a faster parser and <strong>breaking changes</strong> for plugins.</div>
<div>Support ends in <a href="/eol">March</a> for the legacy branch.</div>
</main></body></html>`

func TestExtract_MixedText(t *testing.T) {
	t.Parallel()

	doc := buildScored(t, releaseHTML)

	t.Run("keeps text that sits between inline elements", func(t *testing.T) {
		t.Parallel()

		for _, structured := range []bool{false, true} {
			res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
				o.IncludeStructure = structured
				o.PriorityOrder = pagegraph.PriorityDOMOrder
			}))

			assert.Contains(t, res.Content, "Version two ships a faster parser and breaking changes for plugins.")
			assert.Contains(t, res.Content, "Support ends in March for the legacy branch.")
			assert.Equal(t, 1, strings.Count(res.Content, "breaking changes"))
			assert.Equal(t, 1, strings.Count(res.Content, "March"))
		}
	})

	t.Run("keeps mixed text in sections", func(t *testing.T) {
		t.Parallel()

		res, ok := extract.Section(doc, "release")

		require.True(t, ok)
		assert.Equal(t, "# Release notes\n\n"+
			"Version two ships a faster parser and breaking changes for plugins.\n\n"+
			"Support ends in March for the legacy branch.", res.Content)
	})

	t.Run("keeps mixed text in summaries", func(t *testing.T) {
		t.Parallel()

		got := extract.Summary(doc, 0)

		assert.Contains(t, got, "# Release notes")
		assert.Contains(t, got, "faster parser and breaking changes")
	})

	t.Run("emits own text ahead of block children", func(t *testing.T) {
		t.Parallel()

		div := node(pagegraph.KindContainer, "Lead in words. Body text.", 0.6)
		div.OwnText = "Lead in words."
		div.Children = []*pagegraph.ContentNode{node(pagegraph.KindParagraph, "Body text.", 0.7)}
		doc := &pagegraph.PageDocument{MainContent: []*pagegraph.ContentNode{div}}

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) { o.PriorityOrder = pagegraph.PriorityDOMOrder }))

		assert.Equal(t, "Lead in words.\nBody text.", res.Content)
		assert.Equal(t, 2, res.NodesIncluded)
	})
}

func TestExtract_CodeTruncation(t *testing.T) {
	t.Parallel()

	doc := &pagegraph.PageDocument{MainContent: []*pagegraph.ContentNode{
		heading(2, "Build", 0.9),
		node(pagegraph.KindCode, "go build ./... && go test ./... && go vet ./...", 0.9),
	}}

	t.Run("cuts code inside a closed fence", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
			o.MaxChars = 40
			o.IncludeStructure = true
			o.PriorityOrder = pagegraph.PriorityDOMOrder
		}))

		assert.Equal(t, "## Build\n\n```\ngo build ./... && go…\n```", res.Content)
		assert.Equal(t, 39, res.CharsExtracted)
		assert.Equal(t, 2, res.NodesIncluded)
		assert.True(t, res.Truncated)
	})

	t.Run("drops code when the fence does not fit", func(t *testing.T) {
		t.Parallel()

		res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
			o.MaxChars = 18
			o.IncludeStructure = true
			o.PriorityOrder = pagegraph.PriorityDOMOrder
		}))

		assert.Equal(t, "## Build", res.Content)
		assert.Equal(t, 1, res.NodesIncluded)
		assert.Equal(t, 1, res.TruncationInfo.RemainingNodes)
	})

	t.Run("leaves every structured cut with balanced fences", func(t *testing.T) {
		t.Parallel()

		for maxChars := 1; maxChars <= 60; maxChars++ {
			res := extract.Extract(doc, options(func(o *pagegraph.ExtractOptions) {
				o.MaxChars = maxChars
				o.IncludeStructure = true
				o.PriorityOrder = pagegraph.PriorityDOMOrder
			}))

			assert.Zero(t, strings.Count(res.Content, "```")%2, "maxChars=%d", maxChars)
		}
	})
}
