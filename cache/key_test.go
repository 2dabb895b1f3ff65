package cache_test

import (
	"testing"

	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/cache"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		url         string
		fingerprint string
		want        string
	}{
		{"keeps plain urls", "https://example.com/docs", "", "https://example.com/docs"},
		{"strips the query", "https://example.com/docs?page=2&q=x", "", "https://example.com/docs"},
		{"strips the fragment", "https://example.com/docs#install", "", "https://example.com/docs"},
		{"strips both", "https://example.com/docs?x=1#y", "", "https://example.com/docs"},
		{"appends the fingerprint", "https://example.com/docs?x=1", "a1b2", "https://example.com/docs::a1b2"},
		{"strips unparsable urls by hand", "https://exa mple.com/%zz?x#y", "", "https://exa mple.com/%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cache.Key(tt.url, tt.fingerprint))
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	snap := func(text string) *pagegraph.Snapshot {
		return &pagegraph.Snapshot{Root: &pagegraph.RawElement{Tag: "body", Content: text}}
	}

	t.Run("is stable for the same visible text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, cache.Fingerprint(snap("hello  world")), cache.Fingerprint(snap("hello world")))
		assert.NotEmpty(t, cache.Fingerprint(snap("hello world")))
	})

	t.Run("changes with the text", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, cache.Fingerprint(snap("hello world")), cache.Fingerprint(snap("goodbye world")))
	})

	t.Run("is empty for empty snapshots", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, cache.Fingerprint(nil))
		assert.Empty(t, cache.Fingerprint(&pagegraph.Snapshot{}))
		assert.Empty(t, cache.Fingerprint(snap("   ")))
	})
}
