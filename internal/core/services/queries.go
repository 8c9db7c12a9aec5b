package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/veridoc-cli/internal/logger"
	"github.com/custodia-labs/veridoc-cli/internal/segmenter"
)

// Ensure QueryBuilder implements the interface.
var _ driving.QueryService = (*QueryBuilder)(nil)

const (
	// maxTitleChars bounds the title heuristic (first line of text).
	maxTitleChars = 120

	// maxSampleWords is the prompt sample size when no abstract is found.
	maxSampleWords = 400

	// maxSampleChars bounds the prompt sample.
	maxSampleChars = 2000

	// minPhraseChars drops degenerate lines from model output.
	minPhraseChars = 3

	// fallbackKeywords is how many frequent tokens the keyword fallback
	// considers before stopword filtering.
	fallbackKeywords = 30
)

// abstractHeading matches an "Abstract" heading on its own line.
var abstractHeading = regexp.MustCompile(`(?im)^\s*abstract\s*:?\s*$`)

// sectionBreak matches lines that terminate an abstract body: an
// all-caps heading ending in a colon, or a numbered/roman section start.
var sectionBreak = regexp.MustCompile(`^([A-Z][^a-z\s]+\s*:|I\.\s.*|1\.\s.*)$`)

// QueryBuilder derives a small ordered set of search-query strings from
// a document: the title heuristic first, then generative-model phrases,
// falling back to keyword frequencies when the model is unavailable.
type QueryBuilder struct {
	llm     driven.GenerativeService // optional
	prompts driven.PromptStore
	tuning  domain.Tuning
}

// NewQueryBuilder creates a query builder. The llm parameter is
// optional (can be nil).
func NewQueryBuilder(llm driven.GenerativeService, prompts driven.PromptStore, tuning domain.Tuning) *QueryBuilder {
	return &QueryBuilder{
		llm:     llm,
		prompts: prompts,
		tuning:  tuning.Normalised(),
	}
}

// BuildQueries derives the query set for the document text. It never
// fails: generative-model errors fall through to the keyword fallback.
func (b *QueryBuilder) BuildQueries(ctx context.Context, text string) []string {
	logger.Section("Query Construction")

	title := truncateRunes(firstLine(text), maxTitleChars)
	logger.Debug("Title candidate: %q", title)

	phrases := b.generatePhrases(ctx, text)
	if len(phrases) == 0 {
		logger.Debug("Generative queries unavailable, using keyword fallback")
		phrases = b.keywordFallback(text)
	}

	queries := make([]string, 0, b.tuning.MaxQueries)
	seen := make(map[string]struct{})
	if title != "" {
		queries = append(queries, title)
		seen[strings.ToLower(title)] = struct{}{}
	}
	for _, p := range phrases {
		if len(queries) >= b.tuning.MaxQueries {
			break
		}
		key := strings.ToLower(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		queries = append(queries, p)
	}

	logger.Debug("Built %d queries", len(queries))
	return queries
}

// generatePhrases asks the generative model for 5-7 query phrases, one
// per line. Any failure is caught and reported as "no phrases".
func (b *QueryBuilder) generatePhrases(ctx context.Context, text string) []string {
	if b.llm == nil {
		return nil
	}

	sample := promptSample(text)
	if sample == "" {
		return nil
	}

	template, err := b.prompts.Load(driven.PromptQueryGeneration)
	if err != nil {
		logger.Warn("Query prompt unavailable: %v", err)
		return nil
	}

	out, err := b.llm.Generate(ctx, fmt.Sprintf(template, sample), driven.GenerateOptions{
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("Query generation failed: %v", err)
		return nil
	}

	var phrases []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) > minPhraseChars {
			phrases = append(phrases, line)
		}
	}
	return phrases
}

// keywordFallback returns the most frequent non-stopword tokens of the
// full text.
func (b *QueryBuilder) keywordFallback(text string) []string {
	var phrases []string
	for _, kw := range segmenter.TopKeywords(text, fallbackKeywords) {
		if segmenter.IsStopword(kw.Word) {
			continue
		}
		phrases = append(phrases, kw.Word)
	}
	return phrases
}

// promptSample selects the text shown to the generative model: the body
// of an "Abstract" section when one is present, otherwise the first
// maxSampleWords words. Either way the sample is capped at
// maxSampleChars characters.
func promptSample(text string) string {
	sample := abstractBody(text)
	if sample == "" {
		words := strings.Fields(text)
		if len(words) > maxSampleWords {
			words = words[:maxSampleWords]
		}
		sample = strings.Join(words, " ")
	}
	return truncateRunes(sample, maxSampleChars)
}

// abstractBody returns the paragraph following an "Abstract" heading,
// up to the next blank line or section heading. Empty when no heading
// matches.
func abstractBody(text string) string {
	loc := abstractHeading.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	var body []string
	for _, line := range strings.Split(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && len(body) > 0 {
			break
		}
		if trimmed == "" {
			continue
		}
		if sectionBreak.MatchString(trimmed) {
			break
		}
		body = append(body, trimmed)
	}
	return strings.Join(body, "\n")
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
