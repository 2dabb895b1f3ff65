package main

import (
	"fmt"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/score"
)

// previewRunes bounds the node text shown per line.
const previewRunes = 60

// Run executes the scores command.
func (c *ScoresCmd) Run(deps *Dependencies) error {
	doc, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		return err
	}

	stats := score.Distribution(doc)
	fmt.Fprintf(deps.Stdout, "Nodes: %d\n", stats.Count)
	fmt.Fprintf(deps.Stdout, "Average: %.2f  Median: %.2f  Min: %.2f  Max: %.2f\n",
		stats.Average, stats.Median, stats.Min, stats.Max)
	fmt.Fprintf(deps.Stdout, "Bands: very-low %d, low %d, medium %d, high %d, very-high %d\n",
		stats.Bands.VeryLow, stats.Bands.Low, stats.Bands.Medium, stats.Bands.High, stats.Bands.VeryHigh)

	var nodes []*pagegraph.ContentNode
	if c.Threshold > 0 {
		nodes = score.AboveThreshold(doc, c.Threshold)
		fmt.Fprintf(deps.Stdout, "\nAt or above %.2f:\n", c.Threshold)
	} else {
		nodes = score.TopN(doc, c.Top)
		fmt.Fprintf(deps.Stdout, "\nTop %d:\n", len(nodes))
	}
	for _, n := range nodes {
		fmt.Fprintf(deps.Stdout, "  %.2f  %-10s %s\n", n.Meta.Importance, n.Kind, preview(n.Text))
	}
	return nil
}

// Run executes the json command.
func (c *JSONCmd) Run(deps *Dependencies) error {
	doc, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		return err
	}

	data, err := pagegraph.MarshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(deps.Stdout, string(data))
	return err
}

func preview(text string) string {
	text = pagegraph.NormalizeSpace(text)
	r := []rune(text)
	if len(r) <= previewRunes {
		return text
	}
	return string(r[:previewRunes-1]) + "…"
}
