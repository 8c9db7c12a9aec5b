package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veridoc-cli/internal/logger"
)

const (
	// maxDetectChars is how much of the document the estimator sends.
	maxDetectChars = 4096

	// NeutralAIProbability is returned whenever no usable estimate can
	// be produced. The estimate is advisory, so failures never abort
	// an analysis.
	NeutralAIProbability = 50.0

	// ReasonUnavailable is the rationale paired with the neutral
	// default when the provider call fails or no provider is configured.
	ReasonUnavailable = "Error calling the generative model."

	// ReasonUnparseable is the rationale used when the model answered
	// but no en-dash separated reason could be extracted.
	ReasonUnparseable = "Could not parse reason."
)

// probabilityPattern matches the first 1-3 digit run in the reply.
var probabilityPattern = regexp.MustCompile(`\d{1,3}`)

// Detector estimates the likelihood that a document was machine
// generated by asking a generative model for a single line of the form
// "<percentage>% – <reason>".
type Detector struct {
	llm     driven.GenerativeService // optional
	prompts driven.PromptStore
}

// NewDetector creates an AI-likelihood estimator. The llm parameter is
// optional (can be nil); detection then returns the neutral default.
func NewDetector(llm driven.GenerativeService, prompts driven.PromptStore) *Detector {
	return &Detector{llm: llm, prompts: prompts}
}

// Detect returns a probability in [0, 100] and a one-line reason. It
// never returns an error: provider failures yield the neutral default.
func (d *Detector) Detect(ctx context.Context, text string) (float64, string) {
	logger.Section("AI-Likelihood Estimation")

	if d.llm == nil {
		logger.Warn("No generative model configured, returning neutral estimate")
		return NeutralAIProbability, ReasonUnavailable
	}

	template, err := d.prompts.Load(driven.PromptAIDetection)
	if err != nil {
		logger.Warn("Detection prompt unavailable: %v", err)
		return NeutralAIProbability, ReasonUnavailable
	}

	out, err := d.llm.Generate(ctx, fmt.Sprintf(template, truncateRunes(text, maxDetectChars)), driven.GenerateOptions{
		MaxTokens:   128,
		Temperature: 0,
	})
	if err != nil {
		logger.Warn("AI detection call failed: %v", err)
		return NeutralAIProbability, ReasonUnavailable
	}

	probability, reason := parseEstimate(out)
	logger.Debug("AI probability %.1f%%: %s", probability, reason)
	return probability, reason
}

// parseEstimate extracts "<percentage>% – <reason>" from the first line
// of the model reply. Parsing is lenient: any 1-3 digit number counts
// as the percentage, and a missing en-dash yields the default reason.
func parseEstimate(reply string) (float64, string) {
	line, _, _ := strings.Cut(reply, "\n")

	probability := NeutralAIProbability
	if m := probabilityPattern.FindString(line); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			probability = v
		}
	}
	if probability > 100 {
		probability = 100
	}

	reason := ReasonUnparseable
	if _, after, found := strings.Cut(line, "–"); found {
		if r := strings.TrimSpace(after); r != "" {
			reason = r
		}
	}
	return probability, reason
}
