package main

import (
	"fmt"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/extract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	doc, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		return err
	}

	res := extract.Extract(doc, pagegraph.ExtractOptions{
		MaxChars:         c.MaxChars,
		MinImportance:    c.MinImportance,
		IncludeStructure: c.Structure,
		PriorityOrder:    pagegraph.PriorityOrder(c.Order),
		MainContentOnly:  c.MainOnly,
		Sections:         c.Sections,
		AdaptiveChunking: c.Adaptive,
	})

	fmt.Fprintln(deps.Stdout, res.Content)
	if res.Truncated && res.TruncationInfo != nil {
		fmt.Fprintf(deps.Stderr, "truncated: %d nodes not shown", res.TruncationInfo.RemainingNodes)
		if res.TruncationInfo.LastSection != "" {
			fmt.Fprintf(deps.Stderr, " (last section %q)", res.TruncationInfo.LastSection)
		}
		fmt.Fprintln(deps.Stderr)
	}
	return nil
}

// Run executes the summary command.
func (c *SummaryCmd) Run(deps *Dependencies) error {
	doc, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, extract.Summary(doc, c.MaxLen))
	return nil
}

// Run executes the section command.
func (c *SectionCmd) Run(deps *Dependencies) error {
	doc, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		return err
	}

	res, ok := extract.Section(doc, c.Name)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: no heading matching %q. Use 'pagegraph overview %s' to see the outline.\n", c.Name, c.URL)
		return pagegraph.Errorf(pagegraph.ENOTFOUND, "section %q not found", c.Name)
	}

	fmt.Fprintln(deps.Stdout, res.Content)
	return nil
}

// Run executes the overview command.
func (c *OverviewCmd) Run(deps *Dependencies) error {
	doc, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagegraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, extract.Overview(doc))
	return nil
}
