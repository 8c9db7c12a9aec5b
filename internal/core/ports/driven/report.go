package driven

import (
	"context"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
)

// ReportWriter renders an analysis result into a report artifact.
// This is an optional service - when nil, no artifact is produced and
// AnalysisResult.ReportPath stays empty.
type ReportWriter interface {
	// Write renders the result and returns the artifact path.
	// The caller owns the artifact's lifecycle.
	Write(ctx context.Context, result *domain.AnalysisResult) (string, error)
}
