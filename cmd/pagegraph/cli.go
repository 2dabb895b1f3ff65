package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagegraph"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Analyzer    pagegraph.DocumentAnalyzer
	Cache       pagegraph.AnalysisCache
	Store       pagegraph.DocumentStore
	RateLimiter pagegraph.DomainLimiter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Engine      string        `short:"e" enum:"browser,rendered,http" default:"browser" env:"PAGEGRAPH_ENGINE" help:"Page source: live browser tree, browser-rendered HTML, or plain HTTP (${enum})"`
	Timeout     time.Duration `short:"t" default:"30s" env:"PAGEGRAPH_TIMEOUT" help:"Page load timeout"`
	DB          string        `env:"PAGEGRAPH_DB" help:"Archive analysed pages in this SQLite database"`
	Fingerprint bool          `env:"PAGEGRAPH_FINGERPRINT" help:"Key cached pages by visible text as well as URL, so changed pages are rebuilt"`
	Verbose     bool          `short:"v" help:"Log pipeline activity to stderr"`

	Extract  ExtractCmd  `cmd:"" help:"Extract bounded text from a page"`
	Summary  SummaryCmd  `cmd:"" help:"Print headings with their lead paragraphs"`
	Section  SectionCmd  `cmd:"" help:"Print one section by heading text"`
	Overview OverviewCmd `cmd:"" help:"Print page statistics and outline"`
	Scores   ScoresCmd   `cmd:"" help:"Print the importance distribution and top nodes"`
	JSON     JSONCmd     `cmd:"" name:"json" help:"Print the scored content graph as JSON"`
	Batch    BatchCmd    `cmd:"" help:"Extract many pages concurrently"`
	History  HistoryCmd  `cmd:"" help:"List archived pages (requires --db)"`
	Forget   ForgetCmd   `cmd:"" help:"Remove a page from the archive (requires --db)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL           string   `arg:"" help:"Page URL"`
	MaxChars      int      `short:"n" default:"20000" help:"Character budget"`
	MinImportance float64  `short:"m" default:"0.5" help:"Drop nodes scored below this"`
	Structure     bool     `short:"s" help:"Render markdown-style headings, lists and code"`
	Order         string   `short:"o" enum:"mixed,importance,dom-order" default:"mixed" help:"Node ordering (${enum})"`
	MainOnly      bool     `help:"Skip supplementary content"`
	Sections      []string `name:"section" help:"Keep only headings containing this text (repeatable)"`
	Adaptive      bool     `default:"true" negatable:"" help:"Fill the remaining budget with a cut of the next node"`
}

// SummaryCmd is the "summary" subcommand.
type SummaryCmd struct {
	URL    string `arg:"" help:"Page URL"`
	MaxLen int    `default:"2000" help:"Character budget"`
}

// SectionCmd is the "section" subcommand.
type SectionCmd struct {
	URL  string `arg:"" help:"Page URL"`
	Name string `arg:"" help:"Heading text, matched case-insensitively"`
}

// OverviewCmd is the "overview" subcommand.
type OverviewCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// ScoresCmd is the "scores" subcommand.
type ScoresCmd struct {
	URL       string  `arg:"" help:"Page URL"`
	Top       int     `default:"10" help:"Number of top nodes to list"`
	Threshold float64 `help:"List every node at or above this score instead of the top nodes"`
}

// JSONCmd is the "json" subcommand.
type JSONCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent page limit"`
	Rate        float64  `default:"2" help:"Requests per second per domain (0 disables)"`
	MaxChars    int      `short:"n" default:"20000" help:"Character budget per page"`
	Out         string   `help:"Write excerpts as markdown below this directory"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only list this URL"`
	Limit int    `default:"20" help:"Maximum entries to list"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	URL string `arg:"" help:"Page URL"`
}
