package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagegraph"
)

var _ pagegraph.Provider = (*LoggingProvider)(nil)

// LoggingProvider wraps a Provider with logging.
type LoggingProvider struct {
	next   pagegraph.Provider
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next pagegraph.Provider, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, logger: logger}
}

// Snapshot logs each snapshot with its title and duration.
func (p *LoggingProvider) Snapshot(ctx context.Context, url string) (snap *pagegraph.Snapshot, err error) {
	defer func(begin time.Time) {
		var title string
		if snap != nil {
			title = snap.Title
		}
		p.logger.Info("snapshot",
			"url", url,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Snapshot(ctx, url)
}

// Close delegates to the wrapped provider.
func (p *LoggingProvider) Close() error {
	return p.next.Close()
}
