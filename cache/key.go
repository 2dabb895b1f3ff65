package cache

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagegraph"
)

// fingerprintSep joins a URL key and a content fingerprint. URLs may contain
// it too (IPv6 hosts) but fingerprints never do, so the last one splits.
const fingerprintSep = "::"

// Key derives a cache key from a page URL: query and fragment are dropped
// and a non-empty fingerprint is appended.
func Key(rawURL, fingerprint string) string {
	key := stripURL(rawURL)
	if fingerprint != "" {
		key += fingerprintSep + fingerprint
	}
	return key
}

func stripURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		rawURL, _, _ = strings.Cut(rawURL, "#")
		rawURL, _, _ = strings.Cut(rawURL, "?")
		return rawURL
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// Fingerprint hashes the visible text of a snapshot. Empty snapshots have
// no fingerprint.
func Fingerprint(snap *pagegraph.Snapshot) string {
	if snap == nil || snap.Root == nil {
		return ""
	}
	text := pagegraph.NormalizeSpace(snap.Root.Text())
	if text == "" {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}
