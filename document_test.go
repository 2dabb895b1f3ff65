package pagegraph_test

import (
	"testing"

	"github.com/fwojciec/pagegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *pagegraph.PageDocument {
	return &pagegraph.PageDocument{
		URL:   "https://example.com/guide",
		Title: "Guide",
		MainContent: []*pagegraph.ContentNode{{
			Kind:    pagegraph.KindContainer,
			TagName: "main",
			Text:    "Guide Intro text",
			Meta:    pagegraph.NodeMeta{Locator: "body > main:nth-child(1)", Importance: 1, WordCount: 3, IsMainContent: true},
			Children: []*pagegraph.ContentNode{
				{
					Kind:         pagegraph.KindHeading,
					TagName:      "h1",
					HeadingLevel: 1,
					Text:         "Guide",
					Meta:         pagegraph.NodeMeta{Locator: "body > main:nth-child(1) > h1:nth-child(1)", Importance: 1, WordCount: 1, Depth: 1, IsMainContent: true},
				},
				{
					Kind:    pagegraph.KindParagraph,
					TagName: "p",
					Text:    "Intro text",
					Meta: pagegraph.NodeMeta{
						Locator:       "body > main:nth-child(1) > p:nth-child(2)",
						Importance:    0.72,
						WordCount:     2,
						Depth:         1,
						IsMainContent: true,
						Rect:          pagegraph.NewRect(400, 20),
					},
				},
			},
		}},
		Supplementary: []*pagegraph.ContentNode{{
			Kind: pagegraph.KindParagraph, TagName: "p", Text: "Aside",
			Meta: pagegraph.NodeMeta{Locator: "body > aside:nth-child(2) > p:nth-child(1)", Importance: 0.3, WordCount: 1},
		}},
		Navigation: []*pagegraph.ContentNode{{
			Kind: pagegraph.KindLink, TagName: "a", Text: "Home",
			Meta: pagegraph.NodeMeta{Locator: "body > nav:nth-child(3) > a:nth-child(1)", Importance: 0.2, WordCount: 1},
		}},
		PageMeta: pagegraph.PageMeta{
			TotalWords:              5,
			EstimatedReadingMinutes: 1,
			ContentDensity:          0.42,
			StructureScore:          0.5,
			MainContentArea:         pagegraph.MainContentArea{Locator: "body > main:nth-child(1)", Confidence: 0.9},
		},
	}
}

func TestMarshalDocument(t *testing.T) {
	t.Parallel()

	t.Run("round trips every field", func(t *testing.T) {
		t.Parallel()

		doc := sampleDocument()

		data, err := pagegraph.MarshalDocument(doc)
		require.NoError(t, err)
		got, err := pagegraph.UnmarshalDocument(data)
		require.NoError(t, err)

		assert.Equal(t, doc, got)
	})

	t.Run("uses camel case field names", func(t *testing.T) {
		t.Parallel()

		data, err := pagegraph.MarshalDocument(sampleDocument())
		require.NoError(t, err)

		assert.Contains(t, string(data), `"mainContent"`)
		assert.Contains(t, string(data), `"headingLevel":1`)
		assert.Contains(t, string(data), `"isMainContent":true`)
		assert.Contains(t, string(data), `"estimatedReadingMinutes":1`)
	})

	t.Run("rejects nil documents", func(t *testing.T) {
		t.Parallel()

		_, err := pagegraph.MarshalDocument(nil)

		assert.Equal(t, pagegraph.EINVALID, pagegraph.ErrorCode(err))
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		t.Parallel()

		_, err := pagegraph.UnmarshalDocument([]byte(`{"mainContent": 3}`))

		assert.Equal(t, pagegraph.EINVALID, pagegraph.ErrorCode(err))
	})
}

func TestPageDocument_Clone(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	clone := doc.Clone()

	require.Equal(t, doc, clone)

	clone.MainContent[0].Children[1].Meta.Importance = 0
	clone.MainContent[0].Children[1].Meta.Rect.Area = 1
	clone.Navigation[0].Text = "changed"

	assert.Equal(t, 0.72, doc.MainContent[0].Children[1].Meta.Importance)
	assert.Equal(t, 8000.0, doc.MainContent[0].Children[1].Meta.Rect.Area)
	assert.Equal(t, "Home", doc.Navigation[0].Text)
	assert.Nil(t, (*pagegraph.PageDocument)(nil).Clone())
}

func TestPageDocument_Walk(t *testing.T) {
	t.Parallel()

	t.Run("visits regions in order", func(t *testing.T) {
		t.Parallel()

		var texts []string
		for _, n := range sampleDocument().Nodes() {
			texts = append(texts, n.Text)
		}

		assert.Equal(t, []string{"Guide Intro text", "Guide", "Intro text", "Aside", "Home"}, texts)
	})

	t.Run("skips children when the callback returns false", func(t *testing.T) {
		t.Parallel()

		var count int
		sampleDocument().Walk(func(n *pagegraph.ContentNode) bool {
			count++
			return n.TagName != "main"
		})

		assert.Equal(t, 3, count)
	})
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, pagegraph.CountWords("This paragraph has exactly seven words in it."))
	assert.Equal(t, 0, pagegraph.CountWords(" \n\t "))
	assert.Equal(t, "a b c", pagegraph.NormalizeSpace("  a \n b\t\tc "))
	assert.Equal(t, 0.0, pagegraph.Clamp01(-0.5))
	assert.Equal(t, 1.0, pagegraph.Clamp01(1.7))
	assert.Equal(t, 0.25, pagegraph.Clamp01(0.25))
	assert.True(t, pagegraph.IsNonContentTag("script"))
	assert.False(t, pagegraph.IsNonContentTag("p"))
	assert.True(t, pagegraph.IsBlockTag("li"))
	assert.False(t, pagegraph.IsBlockTag("span"))
}
