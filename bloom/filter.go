// Package bloom provides probabilistic key de-duplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers keys in constant space. It may report a key that was
// never added as seen, but never the reverse. Filter is not safe for
// concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected keys at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Seen records key and reports whether it may have been recorded before.
func (f *Filter) Seen(key string) bool {
	return f.f.TestAndAddString(key)
}
