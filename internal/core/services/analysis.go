package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/veridoc-cli/internal/logger"
	"github.com/custodia-labs/veridoc-cli/internal/segmenter"
)

// Ensure Analysis implements the interface.
var _ driving.AnalysisService = (*Analysis)(nil)

// reportKeywords is how many keyword-frequency entries the result keeps.
const reportKeywords = 20

// Analysis orchestrates one originality analysis: retrieval, overlap
// scanning, AI-likelihood estimation and report rendering.
type Analysis struct {
	retriever *Retriever
	scanner   *Scanner
	detector  *Detector
	report    driven.ReportWriter // optional
}

// NewAnalysis creates the analysis orchestrator. The report parameter
// is optional (can be nil).
func NewAnalysis(retriever *Retriever, scanner *Scanner, detector *Detector, report driven.ReportWriter) *Analysis {
	return &Analysis{
		retriever: retriever,
		scanner:   scanner,
		detector:  detector,
		report:    report,
	}
}

// Analyse runs the full pipeline for one document. It returns either a
// complete result or an error; a failed embedding call mid-scan is the
// only external failure that aborts the run.
func (a *Analysis) Analyse(ctx context.Context, doc domain.Document) (*domain.AnalysisResult, error) {
	text := strings.TrimSpace(doc.Content)
	if text == "" {
		return nil, domain.ErrNoContent
	}

	logger.Section("Analysis")
	logger.Debug("Document: %q (%d bytes)", doc.Title, len(text))

	retrieval, err := a.retriever.Retrieve(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	originality, overlaps, err := a.scanner.Scan(ctx, text, retrieval.Hits)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	probability, reason := a.detector.Detect(ctx, text)

	result := &domain.AnalysisResult{
		Document:      doc,
		Stats:         segmenter.Stats(text),
		Keywords:      segmenter.TopKeywords(text, reportKeywords),
		Queries:       retrieval.Queries,
		Hits:          retrieval.Hits,
		Overlaps:      overlaps,
		Originality:   originality,
		AIProbability: probability,
		AIReason:      reason,
		Retrieval:     retrieval.Report,
	}

	if a.report != nil {
		path, err := a.report.Write(ctx, result)
		if err != nil {
			// The report artifact is advisory; the analysis stands.
			logger.Warn("Report rendering failed: %v", err)
		} else {
			result.ReportPath = path
		}
	}

	return result, nil
}
