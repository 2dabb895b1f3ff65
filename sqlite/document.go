package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/pagegraph"
	"github.com/google/uuid"
)

var _ pagegraph.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements pagegraph.DocumentStore using SQLite.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = "id, key, url, title, total_words, content_hash, payload, created_at"

// SaveDocument inserts or replaces the document stored under key. A replaced
// row keeps its id and moves to the front of FindDocuments.
func (s *DocumentStore) SaveDocument(ctx context.Context, key string, doc *pagegraph.PageDocument) error {
	if strings.TrimSpace(key) == "" {
		return pagegraph.Errorf(pagegraph.EINVALID, "document key required")
	}
	payload, err := pagegraph.MarshalDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			total_words = excluded.total_words,
			content_hash = excluded.content_hash,
			payload = excluded.payload,
			created_at = excluded.created_at
	`, uuid.New().String(), key, doc.URL, doc.Title, doc.PageMeta.TotalWords,
		hashContent(payload), string(payload), formatTime(s.db.Now()))

	return err
}

// FindDocument retrieves the document stored under key.
func (s *DocumentStore) FindDocument(ctx context.Context, key string) (*pagegraph.ArchivedDocument, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE key = ?", key)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagegraph.Errorf(pagegraph.ENOTFOUND, "document not found")
	}
	return doc, err
}

// FindDocuments retrieves archived documents matching the filter, newest first.
func (s *DocumentStore) FindDocuments(ctx context.Context, filter pagegraph.DocumentFilter) ([]*pagegraph.ArchivedDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*pagegraph.ArchivedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes the document stored under key.
func (s *DocumentStore) DeleteDocument(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagegraph.Errorf(pagegraph.ENOTFOUND, "document not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*pagegraph.ArchivedDocument, error) {
	var doc pagegraph.ArchivedDocument
	var payload, createdAt string

	if err := row.Scan(&doc.ID, &doc.Key, &doc.URL, &doc.Title, &doc.TotalWords,
		&doc.ContentHash, &payload, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if doc.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.Document, err = pagegraph.UnmarshalDocument([]byte(payload)); err != nil {
		return nil, err
	}

	return &doc, nil
}
