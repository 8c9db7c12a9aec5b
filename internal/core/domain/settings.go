package domain

// Default tuning values, matched to the thresholds the overlap scanner
// was calibrated against.
const (
	DefaultMaxQueries        = 12
	DefaultMaxPages          = 40
	DefaultWindowSentences   = 3
	DefaultFuzzThreshold     = 55
	DefaultCosineThreshold   = 0.40
	DefaultMaxOverlapsPerURL = 6
)

// Tuning holds the overlap-detection knobs. All fields are configurable;
// zero values are replaced with defaults by Normalised.
type Tuning struct {
	// MaxQueries caps the query set built for one document.
	MaxQueries int

	// MaxPages caps the retrieved hit set across all queries.
	MaxPages int

	// WindowSentences is the sliding-window size in sentences.
	WindowSentences int

	// FuzzThreshold is the minimum lexical score (0-100) for a page
	// chunk to be considered for embedding.
	FuzzThreshold int

	// CosineThreshold is the minimum semantic score for a page chunk
	// to be recorded as an overlap.
	CosineThreshold float64

	// MaxOverlapsPerURL caps overlap contributions per source URL.
	MaxOverlapsPerURL int
}

// DefaultTuning returns the default knob values.
func DefaultTuning() Tuning {
	return Tuning{
		MaxQueries:        DefaultMaxQueries,
		MaxPages:          DefaultMaxPages,
		WindowSentences:   DefaultWindowSentences,
		FuzzThreshold:     DefaultFuzzThreshold,
		CosineThreshold:   DefaultCosineThreshold,
		MaxOverlapsPerURL: DefaultMaxOverlapsPerURL,
	}
}

// Normalised returns a copy with zero fields replaced by defaults.
func (t Tuning) Normalised() Tuning {
	def := DefaultTuning()
	if t.MaxQueries <= 0 {
		t.MaxQueries = def.MaxQueries
	}
	if t.MaxPages <= 0 {
		t.MaxPages = def.MaxPages
	}
	if t.WindowSentences <= 0 {
		t.WindowSentences = def.WindowSentences
	}
	if t.FuzzThreshold <= 0 {
		t.FuzzThreshold = def.FuzzThreshold
	}
	if t.CosineThreshold <= 0 {
		t.CosineThreshold = def.CosineThreshold
	}
	if t.MaxOverlapsPerURL <= 0 {
		t.MaxOverlapsPerURL = def.MaxOverlapsPerURL
	}
	return t
}

// SearchSettings configures the web search provider.
type SearchSettings struct {
	// APIKey authenticates against the search API. Empty means web
	// retrieval is disabled and analyses run in degraded mode.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// IsConfigured returns true if a search key is present.
func (s *SearchSettings) IsConfigured() bool {
	return s != nil && s.APIKey != ""
}

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	// Provider selects the adapter ("gemini" or "openai").
	Provider string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// Model is the embedding model name.
	Model string
}

// IsConfigured returns true if the settings are usable.
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// LLMSettings configures the generative-text provider.
type LLMSettings struct {
	// Provider selects the adapter ("gemini" or "openai").
	Provider string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// Model is the generative model name.
	Model string
}

// IsConfigured returns true if the settings are usable.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}
