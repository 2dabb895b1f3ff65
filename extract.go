package pagegraph

// PriorityOrder selects how extracted nodes are ordered.
type PriorityOrder string

// Priority orders.
const (
	// PriorityMixed keeps document order except where importance differs
	// by more than one 0.2-wide band.
	PriorityMixed      PriorityOrder = "mixed"
	PriorityImportance PriorityOrder = "importance"
	PriorityDOMOrder   PriorityOrder = "dom-order"
)

// Extraction defaults.
const (
	DefaultMaxChars      = 20000
	DefaultMinImportance = 0.5

	// MinViableChars is the budget used when a request asks for none.
	MinViableChars = 100
)

// ExtractOptions is one extraction request.
type ExtractOptions struct {
	MaxChars         int           `json:"maxChars"`
	MinImportance    float64       `json:"minImportance"`
	IncludeStructure bool          `json:"includeStructure"`
	PriorityOrder    PriorityOrder `json:"priorityOrder"`
	MainContentOnly  bool          `json:"mainContentOnly"`
	Sections         []string      `json:"sections,omitempty"`
	AdaptiveChunking bool          `json:"adaptiveChunking"`
}

// DefaultExtractOptions returns the default request.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		MaxChars:         DefaultMaxChars,
		MinImportance:    DefaultMinImportance,
		PriorityOrder:    PriorityMixed,
		AdaptiveChunking: true,
	}
}

// ExtractionResult is the bounded text produced for one request.
type ExtractionResult struct {
	Content          string          `json:"content"`
	CharsExtracted   int             `json:"charsExtracted"`
	NodesIncluded    int             `json:"nodesIncluded"`
	SectionsIncluded int             `json:"sectionsIncluded"`
	Truncated        bool            `json:"truncated"`
	TruncationInfo   *TruncationInfo `json:"truncationInfo,omitempty"`
}

// TruncationInfo describes what a truncated extraction left out.
type TruncationInfo struct {
	RemainingNodes int    `json:"remainingNodes"`
	LastSection    string `json:"lastSection,omitempty"`
}

// ScoreStats summarizes the importance distribution of a document.
type ScoreStats struct {
	Count   int        `json:"count"`
	Average float64    `json:"average"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Median  float64    `json:"median"`
	Bands   ScoreBands `json:"bands"`
}

// ScoreBands counts nodes per importance band.
type ScoreBands struct {
	VeryLow  int `json:"veryLow"`  // [0, 0.3)
	Low      int `json:"low"`      // [0.3, 0.5)
	Medium   int `json:"medium"`   // [0.5, 0.7)
	High     int `json:"high"`     // [0.7, 0.9)
	VeryHigh int `json:"veryHigh"` // [0.9, 1]
}
