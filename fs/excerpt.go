package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/pagegraph"
	"gopkg.in/yaml.v3"
)

var _ pagegraph.ExcerptStore = (*FileStore)(nil)

// FileStore implements pagegraph.ExcerptStore with atomic update semantics.
// Excerpts are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string

	// Now stamps the front matter. Overridable in tests.
	Now func() time.Time
}

// NewFileStore creates a new FileStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		Now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes excerpt below the temporary directory.
func (s *FileStore) Save(ctx context.Context, excerpt *pagegraph.Excerpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if excerpt == nil {
		return pagegraph.Errorf(pagegraph.EINVALID, "nil excerpt")
	}

	relPath, err := URLToPath(excerpt.URL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}

	content, err := FormatExcerpt(excerpt, s.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0o644)
}

// Commit replaces the final directory with the temporary one. Committing
// without any saved excerpt leaves an empty final directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0o755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the last Commit.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

type frontMatter struct {
	Source    string    `yaml:"source"`
	Title     string    `yaml:"title"`
	Extracted time.Time `yaml:"extracted"`
}

// FormatExcerpt renders an excerpt as markdown with YAML front matter.
func FormatExcerpt(excerpt *pagegraph.Excerpt, at time.Time) (string, error) {
	header, err := yaml.Marshal(frontMatter{
		Source:    excerpt.URL,
		Title:     excerpt.Title,
		Extracted: at.UTC().Truncate(time.Second),
	})
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(excerpt.Content)
	if !strings.HasSuffix(excerpt.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}
