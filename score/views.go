package score

import (
	"slices"

	"github.com/fwojciec/pagegraph"
)

// TopN returns the n most important nodes, highest first. Ties keep
// document order.
func TopN(doc *pagegraph.PageDocument, n int) []*pagegraph.ContentNode {
	if doc == nil || n <= 0 {
		return nil
	}
	nodes := doc.Nodes()
	slices.SortStableFunc(nodes, func(a, b *pagegraph.ContentNode) int {
		switch {
		case a.Meta.Importance > b.Meta.Importance:
			return -1
		case a.Meta.Importance < b.Meta.Importance:
			return 1
		}
		return 0
	})
	if len(nodes) > n {
		nodes = nodes[:n]
	}
	return nodes
}

// AboveThreshold returns the nodes scoring at least threshold, in document
// order.
func AboveThreshold(doc *pagegraph.PageDocument, threshold float64) []*pagegraph.ContentNode {
	if doc == nil {
		return nil
	}
	var out []*pagegraph.ContentNode
	doc.Walk(func(n *pagegraph.ContentNode) bool {
		if n.Meta.Importance >= threshold {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Distribution summarizes the importance scores of every node in doc.
func Distribution(doc *pagegraph.PageDocument) pagegraph.ScoreStats {
	var stats pagegraph.ScoreStats
	if doc == nil {
		return stats
	}

	var scores []float64
	doc.Walk(func(n *pagegraph.ContentNode) bool {
		scores = append(scores, n.Meta.Importance)
		return true
	})
	if len(scores) == 0 {
		return stats
	}
	slices.Sort(scores)

	var sum float64
	for _, s := range scores {
		sum += s
		switch {
		case s < 0.3:
			stats.Bands.VeryLow++
		case s < 0.5:
			stats.Bands.Low++
		case s < 0.7:
			stats.Bands.Medium++
		case s < 0.9:
			stats.Bands.High++
		default:
			stats.Bands.VeryHigh++
		}
	}

	stats.Count = len(scores)
	stats.Average = sum / float64(len(scores))
	stats.Min = scores[0]
	stats.Max = scores[len(scores)-1]
	if mid := len(scores) / 2; len(scores)%2 == 1 {
		stats.Median = scores[mid]
	} else {
		stats.Median = (scores[mid-1] + scores[mid]) / 2
	}
	return stats
}
