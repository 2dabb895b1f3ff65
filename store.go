package pagegraph

import (
	"context"
	"time"
)

// ArchivedDocument is a scored document persisted by a DocumentStore.
type ArchivedDocument struct {
	ID          string        `json:"id"`
	Key         string        `json:"key"`
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	TotalWords  int           `json:"totalWords"`
	ContentHash string        `json:"contentHash"`
	Document    *PageDocument `json:"document"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentStore persists scored documents beyond a process lifetime.
type DocumentStore interface {
	// SaveDocument inserts or replaces the document stored under key.
	SaveDocument(ctx context.Context, key string, doc *PageDocument) error

	// FindDocument retrieves the document stored under key.
	// Returns ENOTFOUND if no document exists.
	FindDocument(ctx context.Context, key string) (*ArchivedDocument, error)

	// FindDocuments retrieves archived documents newest first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*ArchivedDocument, error)

	// DeleteDocument removes the document stored under key.
	// Returns ENOTFOUND if no document exists.
	DeleteDocument(ctx context.Context, key string) error
}

// Excerpt is extracted text written out for one URL.
type Excerpt struct {
	URL     string
	Title   string
	Content string
}

// ExcerptStore persists excerpts with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ExcerptStore interface {
	Save(ctx context.Context, excerpt *Excerpt) error
	Commit() error
	Abort() error
}
