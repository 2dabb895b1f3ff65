package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocument(url, title string, words int) *pagegraph.PageDocument {
	return &pagegraph.PageDocument{
		URL:   url,
		Title: title,
		MainContent: []*pagegraph.ContentNode{{
			Kind:    pagegraph.KindParagraph,
			TagName: "p",
			Text:    "Archived paragraph",
			Meta:    pagegraph.NodeMeta{WordCount: 2, Importance: 0.77},
		}},
		PageMeta: pagegraph.PageMeta{TotalWords: words},
	}
}

func TestDocumentStore_SaveDocument(t *testing.T) {
	t.Parallel()

	t.Run("stores the document with generated id and hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewDocumentStore(db)
		ctx := context.Background()

		doc := newDocument("https://example.com/a", "A", 12)
		require.NoError(t, store.SaveDocument(ctx, "https://example.com/a", doc))

		got, err := store.FindDocument(ctx, "https://example.com/a")
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Len(t, got.ContentHash, 16)
		assert.Equal(t, "https://example.com/a", got.Key)
		assert.Equal(t, "https://example.com/a", got.URL)
		assert.Equal(t, "A", got.Title)
		assert.Equal(t, 12, got.TotalWords)
		assert.False(t, got.CreatedAt.IsZero())
		assert.Equal(t, doc, got.Document)
	})

	t.Run("replaces an existing key and keeps its id", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewDocumentStore(db)
		ctx := context.Background()

		require.NoError(t, store.SaveDocument(ctx, "k", newDocument("https://example.com/a", "Old", 1)))
		before, err := store.FindDocument(ctx, "k")
		require.NoError(t, err)

		require.NoError(t, store.SaveDocument(ctx, "k", newDocument("https://example.com/a", "New", 2)))
		after, err := store.FindDocument(ctx, "k")
		require.NoError(t, err)

		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, "New", after.Title)
		assert.NotEqual(t, before.ContentHash, after.ContentHash)

		all, err := store.FindDocuments(ctx, pagegraph.DocumentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("identical documents hash identically", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewDocumentStore(db)
		ctx := context.Background()

		require.NoError(t, store.SaveDocument(ctx, "one", newDocument("https://example.com/a", "Same", 3)))
		require.NoError(t, store.SaveDocument(ctx, "two", newDocument("https://example.com/a", "Same", 3)))

		one, err := store.FindDocument(ctx, "one")
		require.NoError(t, err)
		two, err := store.FindDocument(ctx, "two")
		require.NoError(t, err)

		assert.Equal(t, one.ContentHash, two.ContentHash)
		assert.NotEqual(t, one.ID, two.ID)
	})

	t.Run("rejects a blank key", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewDocumentStore(setupTestDB(t))

		err := store.SaveDocument(context.Background(), "  ", newDocument("https://example.com", "", 0))

		assert.Equal(t, pagegraph.EINVALID, pagegraph.ErrorCode(err))
	})

	t.Run("rejects a nil document", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewDocumentStore(setupTestDB(t))

		err := store.SaveDocument(context.Background(), "k", nil)

		assert.Equal(t, pagegraph.EINVALID, pagegraph.ErrorCode(err))
	})
}

func TestDocumentStore_FindDocument(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for a missing key", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewDocumentStore(setupTestDB(t))

		_, err := store.FindDocument(context.Background(), "missing")

		assert.Equal(t, pagegraph.ENOTFOUND, pagegraph.ErrorCode(err))
	})
}

func TestDocumentStore_FindDocuments(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.DocumentStore {
		t.Helper()
		db := setupTestDB(t)
		db.Now = tickingClock()
		store := sqlite.NewDocumentStore(db)
		for i, url := range []string{"https://a.test/", "https://b.test/", "https://a.test/", "https://c.test/"} {
			key := fmt.Sprintf("%s#%d", url, i)
			require.NoError(t, store.SaveDocument(context.Background(), key, newDocument(url, fmt.Sprintf("doc %d", i), i)))
		}
		return store
	}

	titles := func(docs []*pagegraph.ArchivedDocument) []string {
		out := make([]string, len(docs))
		for i, d := range docs {
			out[i] = d.Title
		}
		return out
	}

	t.Run("returns documents newest first", func(t *testing.T) {
		t.Parallel()

		docs, err := seed(t).FindDocuments(context.Background(), pagegraph.DocumentFilter{})

		require.NoError(t, err)
		assert.Equal(t, []string{"doc 3", "doc 2", "doc 1", "doc 0"}, titles(docs))
	})

	t.Run("filters by url", func(t *testing.T) {
		t.Parallel()

		url := "https://a.test/"
		docs, err := seed(t).FindDocuments(context.Background(), pagegraph.DocumentFilter{URL: &url})

		require.NoError(t, err)
		assert.Equal(t, []string{"doc 2", "doc 0"}, titles(docs))
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		docs, err := seed(t).FindDocuments(context.Background(), pagegraph.DocumentFilter{Offset: 1, Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, []string{"doc 2", "doc 1"}, titles(docs))
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		docs, err := seed(t).FindDocuments(context.Background(), pagegraph.DocumentFilter{Offset: 3})

		require.NoError(t, err)
		assert.Equal(t, []string{"doc 0"}, titles(docs))
	})

	t.Run("re-saving moves a document to the front", func(t *testing.T) {
		t.Parallel()

		store := seed(t)
		ctx := context.Background()
		require.NoError(t, store.SaveDocument(ctx, "https://b.test/#1", newDocument("https://b.test/", "doc 1 again", 1)))

		docs, err := store.FindDocuments(ctx, pagegraph.DocumentFilter{Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, []string{"doc 1 again"}, titles(docs))
	})

	t.Run("returns empty for an empty archive", func(t *testing.T) {
		t.Parallel()

		docs, err := sqlite.NewDocumentStore(setupTestDB(t)).FindDocuments(context.Background(), pagegraph.DocumentFilter{})

		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	t.Parallel()

	t.Run("removes the document", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewDocumentStore(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, store.SaveDocument(ctx, "k", newDocument("https://example.com", "T", 1)))

		require.NoError(t, store.DeleteDocument(ctx, "k"))

		_, err := store.FindDocument(ctx, "k")
		assert.Equal(t, pagegraph.ENOTFOUND, pagegraph.ErrorCode(err))
	})

	t.Run("returns not found for a missing key", func(t *testing.T) {
		t.Parallel()

		err := sqlite.NewDocumentStore(setupTestDB(t)).DeleteDocument(context.Background(), "missing")

		assert.Equal(t, pagegraph.ENOTFOUND, pagegraph.ErrorCode(err))
	})
}
