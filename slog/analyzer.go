package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagegraph"
)

var _ pagegraph.DocumentAnalyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps a DocumentAnalyzer with logging.
type LoggingAnalyzer struct {
	next   pagegraph.DocumentAnalyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next pagegraph.DocumentAnalyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze logs the analysed URL with the resulting page statistics.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, url string) (doc *pagegraph.PageDocument, err error) {
	defer func(begin time.Time) {
		var words, nodes int
		var structure float64
		if doc != nil {
			words = doc.PageMeta.TotalWords
			nodes = len(doc.Nodes())
			structure = doc.PageMeta.StructureScore
		}
		a.logger.Info("analyze",
			"url", url,
			"words", words,
			"nodes", nodes,
			"structure", structure,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(ctx, url)
}
