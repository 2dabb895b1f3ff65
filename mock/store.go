package mock

import (
	"context"

	"github.com/fwojciec/pagegraph"
)

var _ pagegraph.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of pagegraph.DocumentStore.
type DocumentStore struct {
	SaveDocumentFn   func(ctx context.Context, key string, doc *pagegraph.PageDocument) error
	FindDocumentFn   func(ctx context.Context, key string) (*pagegraph.ArchivedDocument, error)
	FindDocumentsFn  func(ctx context.Context, filter pagegraph.DocumentFilter) ([]*pagegraph.ArchivedDocument, error)
	DeleteDocumentFn func(ctx context.Context, key string) error
}

func (s *DocumentStore) SaveDocument(ctx context.Context, key string, doc *pagegraph.PageDocument) error {
	return s.SaveDocumentFn(ctx, key, doc)
}

func (s *DocumentStore) FindDocument(ctx context.Context, key string) (*pagegraph.ArchivedDocument, error) {
	return s.FindDocumentFn(ctx, key)
}

func (s *DocumentStore) FindDocuments(ctx context.Context, filter pagegraph.DocumentFilter) ([]*pagegraph.ArchivedDocument, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentStore) DeleteDocument(ctx context.Context, key string) error {
	return s.DeleteDocumentFn(ctx, key)
}

var _ pagegraph.ExcerptStore = (*ExcerptStore)(nil)

// ExcerptStore is a mock implementation of pagegraph.ExcerptStore.
type ExcerptStore struct {
	SaveFn   func(ctx context.Context, excerpt *pagegraph.Excerpt) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ExcerptStore) Save(ctx context.Context, excerpt *pagegraph.Excerpt) error {
	return s.SaveFn(ctx, excerpt)
}

func (s *ExcerptStore) Commit() error {
	return s.CommitFn()
}

func (s *ExcerptStore) Abort() error {
	return s.AbortFn()
}
