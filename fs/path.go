// Package fs writes extracted excerpts to disk.
package fs

import (
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/pagegraph"
)

// URLToPath converts a page URL to a relative file path rooted at its host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagegraph.Errorf(pagegraph.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", pagegraph.Errorf(pagegraph.EINVALID, "url %q has no host", rawURL)
	}

	host := strings.ReplaceAll(strings.ToLower(u.Host), ":", "_")

	// Cleaning against a rooted path keeps ".." segments inside the host dir.
	p := path.Clean("/" + u.Path)
	trailing := strings.HasSuffix(u.Path, "/") || p == "/"
	p = strings.TrimPrefix(p, "/")

	switch {
	case p == "":
		return host + "/index.md", nil
	case trailing:
		return host + "/" + p + "/index.md", nil
	default:
		return host + "/" + strings.TrimSuffix(p, ".html") + ".md", nil
	}
}
