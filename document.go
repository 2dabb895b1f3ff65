package pagegraph

import (
	"context"
	"encoding/json"
	"time"
)

// MainContentArea identifies the region judged to hold the primary content.
type MainContentArea struct {
	Locator    string  `json:"locator"`
	Confidence float64 `json:"confidence"`
}

// PageMeta holds page-level statistics.
type PageMeta struct {
	TotalWords              int             `json:"totalWords"`
	EstimatedReadingMinutes int             `json:"estimatedReadingMinutes"`
	ContentDensity          float64         `json:"contentDensity"`
	StructureScore          float64         `json:"structureScore"`
	MainContentArea         MainContentArea `json:"mainContentArea"`
}

// PageDocument is the content graph built from one Provider snapshot.
// The three root sequences hold disjoint node sets. Once scored, a
// PageDocument is treated as immutable and may be shared read-only.
type PageDocument struct {
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	MainContent   []*ContentNode `json:"mainContent"`
	Supplementary []*ContentNode `json:"supplementary"`
	Navigation    []*ContentNode `json:"navigation"`
	PageMeta      PageMeta       `json:"pageMeta"`
}

// Walk visits every node of the document in pre-order: main content first,
// then supplementary, then navigation.
func (d *PageDocument) Walk(fn func(node *ContentNode) bool) {
	for _, roots := range [][]*ContentNode{d.MainContent, d.Supplementary, d.Navigation} {
		for _, n := range roots {
			n.Walk(fn)
		}
	}
}

// Nodes returns every node of the document in Walk order.
func (d *PageDocument) Nodes() []*ContentNode {
	var nodes []*ContentNode
	d.Walk(func(n *ContentNode) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// Clone returns a deep copy of d.
func (d *PageDocument) Clone() *PageDocument {
	if d == nil {
		return nil
	}
	c := *d
	c.MainContent = cloneNodes(d.MainContent)
	c.Supplementary = cloneNodes(d.Supplementary)
	c.Navigation = cloneNodes(d.Navigation)
	return &c
}

func cloneNodes(nodes []*ContentNode) []*ContentNode {
	if nodes == nil {
		return nil
	}
	out := make([]*ContentNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// MarshalDocument serializes a document to JSON.
func MarshalDocument(doc *PageDocument) ([]byte, error) {
	if doc == nil {
		return nil, Errorf(EINVALID, "nil document")
	}
	return json.Marshal(doc)
}

// UnmarshalDocument parses a document serialized by MarshalDocument.
func UnmarshalDocument(data []byte) (*PageDocument, error) {
	var doc PageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Errorf(EINVALID, "invalid document payload: %v", err)
	}
	return &doc, nil
}

// Builder turns a snapshot into an unscored PageDocument.
// Builders never fail: malformed input degrades to a smaller document.
type Builder interface {
	Build(snap *Snapshot) *PageDocument
}

// Scorer assigns importance scores. Score returns a scored copy and leaves
// its input untouched.
type Scorer interface {
	Score(doc *PageDocument) *PageDocument
}

// DocumentAnalyzer produces scored documents for URLs.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, url string) (*PageDocument, error)
}

// AnalysisCache stores scored documents with a time-to-live.
// Lookups never fail; any problem resolves to a miss.
type AnalysisCache interface {
	// Get returns a live entry. Expired entries are evicted and miss.
	Get(key string) (*PageDocument, bool)

	// Set inserts or overwrites an entry. A non-positive ttl uses the
	// cache default.
	Set(key string, doc *PageDocument, ttl time.Duration)

	// Delete removes an entry and reports whether it existed.
	Delete(key string) bool

	// Has reports whether a live entry exists for key.
	Has(key string) bool

	// Clear drops every entry.
	Clear()

	// ClearExpired drops expired entries and returns how many were removed.
	ClearExpired() int

	// Stats reports occupancy and remaining TTLs.
	Stats() CacheStats
}

// CacheStats reports cache occupancy.
type CacheStats struct {
	Size    int               `json:"size"`
	MaxSize int               `json:"maxSize"`
	Entries []CacheEntryStats `json:"entries"`
}

// CacheEntryStats reports one entry's remaining lifetime.
type CacheEntryStats struct {
	Key                 string `json:"key"`
	RemainingTTLSeconds int    `json:"remainingTtlSeconds"`
}
