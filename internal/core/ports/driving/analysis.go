package driving

import (
	"context"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
)

// AnalysisService runs the full originality analysis for one document.
type AnalysisService interface {
	// Analyse runs query building, web retrieval, overlap scanning and
	// AI-likelihood estimation for the document, and renders the report
	// artifact. It returns either a complete result or an error; there
	// is no partial-success shape.
	Analyse(ctx context.Context, doc domain.Document) (*domain.AnalysisResult, error)
}

// QueryService exposes query construction on its own, mainly for
// inspection from the CLI.
type QueryService interface {
	// BuildQueries derives the search-query set for the document text.
	BuildQueries(ctx context.Context, text string) []string
}
