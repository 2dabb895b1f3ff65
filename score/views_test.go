package score_test

import (
	"testing"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(importances ...float64) *pagegraph.PageDocument {
	doc := &pagegraph.PageDocument{}
	for i, imp := range importances {
		n := paragraph("text")
		n.Meta.Importance = imp
		n.Meta.Locator = string(rune('a' + i))
		doc.MainContent = append(doc.MainContent, n)
	}
	return doc
}

func locators(nodes []*pagegraph.ContentNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Meta.Locator
	}
	return out
}

func TestTopN(t *testing.T) {
	t.Parallel()

	doc := scored(0.4, 0.9, 0.6, 0.9, 0.1)

	t.Run("returns the highest scores first", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"b", "d", "c"}, locators(score.TopN(doc, 3)))
	})

	t.Run("returns every node when n exceeds the count", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, score.TopN(doc, 10), 5)
	})

	t.Run("returns nothing for non-positive n", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, score.TopN(doc, 0))
		assert.Empty(t, score.TopN(nil, 3))
	})
}

func TestAboveThreshold(t *testing.T) {
	t.Parallel()

	doc := scored(0.4, 0.9, 0.6, 0.9, 0.1)

	assert.Equal(t, []string{"b", "c", "d"}, locators(score.AboveThreshold(doc, 0.6)))
	assert.Empty(t, score.AboveThreshold(doc, 1.1))
}

func TestDistribution(t *testing.T) {
	t.Parallel()

	t.Run("summarizes odd counts", func(t *testing.T) {
		t.Parallel()

		stats := score.Distribution(scored(0.95, 0.1, 0.6, 0.4, 0.8))

		require.Equal(t, 5, stats.Count)
		assert.InDelta(t, 0.57, stats.Average, delta)
		assert.Equal(t, 0.1, stats.Min)
		assert.Equal(t, 0.95, stats.Max)
		assert.Equal(t, 0.6, stats.Median)
		assert.Equal(t, pagegraph.ScoreBands{VeryLow: 1, Low: 1, Medium: 1, High: 1, VeryHigh: 1}, stats.Bands)
	})

	t.Run("averages the middle pair for even counts", func(t *testing.T) {
		t.Parallel()

		stats := score.Distribution(scored(0.2, 0.4))

		assert.InDelta(t, 0.3, stats.Median, delta)
	})

	t.Run("places band edges in the upper band", func(t *testing.T) {
		t.Parallel()

		stats := score.Distribution(scored(0.3, 0.5, 0.7, 0.9, 1.0))

		assert.Equal(t, pagegraph.ScoreBands{Low: 1, Medium: 1, High: 1, VeryHigh: 2}, stats.Bands)
	})

	t.Run("returns zero stats for empty documents", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pagegraph.ScoreStats{}, score.Distribution(&pagegraph.PageDocument{}))
	})
}
