package mock

import (
	"context"

	"github.com/fwojciec/pagegraph"
)

var _ pagegraph.Builder = (*Builder)(nil)

// Builder is a mock implementation of pagegraph.Builder.
type Builder struct {
	BuildFn func(snap *pagegraph.Snapshot) *pagegraph.PageDocument
}

func (b *Builder) Build(snap *pagegraph.Snapshot) *pagegraph.PageDocument {
	return b.BuildFn(snap)
}

var _ pagegraph.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of pagegraph.Scorer.
type Scorer struct {
	ScoreFn func(doc *pagegraph.PageDocument) *pagegraph.PageDocument
}

func (s *Scorer) Score(doc *pagegraph.PageDocument) *pagegraph.PageDocument {
	return s.ScoreFn(doc)
}

var _ pagegraph.DocumentAnalyzer = (*DocumentAnalyzer)(nil)

// DocumentAnalyzer is a mock implementation of pagegraph.DocumentAnalyzer.
type DocumentAnalyzer struct {
	AnalyzeFn func(ctx context.Context, url string) (*pagegraph.PageDocument, error)
}

func (a *DocumentAnalyzer) Analyze(ctx context.Context, url string) (*pagegraph.PageDocument, error) {
	return a.AnalyzeFn(ctx, url)
}

var _ pagegraph.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of pagegraph.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
