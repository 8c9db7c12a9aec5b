package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veridoc-cli/internal/logger"
	"github.com/custodia-labs/veridoc-cli/internal/segmenter"
)

// snippetChars is how much of a matched page chunk the overlap keeps.
const snippetChars = 180

// cosineEpsilon guards the cosine denominator against zero vectors.
const cosineEpsilon = 1e-6

// Scanner locates and scores overlapping passages between a document
// and a set of retrieved pages. A cheap lexical gate runs before the
// semantic gate so that page chunks with no token overlap never cost an
// embedding call.
type Scanner struct {
	embedder driven.EmbeddingService
	tuning   domain.Tuning
}

// NewScanner creates an overlap scanner.
func NewScanner(embedder driven.EmbeddingService, tuning domain.Tuning) *Scanner {
	return &Scanner{
		embedder: embedder,
		tuning:   tuning.Normalised(),
	}
}

// Scan compares the document against every page hit and returns the
// originality percentage and the ordered overlap list. Embedding
// failures abort the scan and surface to the caller.
//
// The lexical score compares each page chunk against the whole document
// text while the semantic score compares against individual document
// chunks. The asymmetry is intentional; the thresholds are calibrated
// against it.
func (s *Scanner) Scan(ctx context.Context, docText string, hits []domain.PageHit) (float64, []domain.Overlap, error) {
	logger.Section("Overlap Scan")

	docChunks := segmenter.Chunks(docText, s.tuning.WindowSentences)
	if len(docChunks) == 0 {
		// Too few sentences to form a window: no overlap is possible.
		logger.Debug("Document yields no chunks, originality is trivially 100")
		return 100, nil, nil
	}

	if s.embedder == nil {
		logger.Warn("No embedding service available, skipping overlap scan")
		return 100, nil, nil
	}

	docVecs, err := s.embedder.EmbedBatch(ctx, docChunks)
	if err != nil {
		return 0, nil, fmt.Errorf("embed document chunks: %w", err)
	}
	logger.Debug("Embedded %d document chunks", len(docChunks))

	var (
		overlaps        []domain.Overlap
		overlappedWords int
		perURL          = make(map[string]int)
	)

	for _, hit := range hits {
		if hit.Text == "" {
			continue
		}
		for _, chunk := range segmenter.Chunks(hit.Text, s.tuning.WindowSentences) {
			if perURL[hit.URL] >= s.tuning.MaxOverlapsPerURL {
				break
			}

			lexical := fuzzy.TokenSetRatio(chunk, docText)
			if lexical < s.tuning.FuzzThreshold {
				continue
			}

			vec, err := s.embedder.Embed(ctx, chunk)
			if err != nil {
				return 0, nil, fmt.Errorf("embed page chunk: %w", err)
			}
			semantic := maxCosine(vec, docVecs)
			if semantic < s.tuning.CosineThreshold {
				continue
			}

			overlaps = append(overlaps, domain.Overlap{
				Snippet:       snippet(chunk),
				LexicalScore:  lexical,
				SemanticScore: math.Round(semantic*100) / 100,
				URL:           hit.URL,
			})
			overlappedWords += len(strings.Fields(chunk))
			perURL[hit.URL]++
		}
	}

	originality := originalityScore(overlappedWords, segmenter.WordCount(docText))

	sort.SliceStable(overlaps, func(i, j int) bool {
		if overlaps[i].LexicalScore != overlaps[j].LexicalScore {
			return overlaps[i].LexicalScore > overlaps[j].LexicalScore
		}
		return overlaps[i].SemanticScore > overlaps[j].SemanticScore
	})

	logger.Info("Found %d overlaps, originality %.1f%%", len(overlaps), originality)
	return originality, overlaps, nil
}

// originalityScore is 100 minus the overlapped-word ratio, clamped to
// [0, 100]. Overlapping chunks share sentences, so overlappedWords can
// exceed the true unique overlap; the clamp absorbs that.
func originalityScore(overlappedWords, totalWords int) float64 {
	if totalWords < 1 {
		totalWords = 1
	}
	orig := 100 - float64(overlappedWords)/float64(totalWords)*100
	if orig < 0 {
		return 0
	}
	if orig > 100 {
		return 100
	}
	return orig
}

// snippet truncates a chunk for display, appending an ellipsis when
// content was cut.
func snippet(chunk string) string {
	runes := []rune(chunk)
	if len(runes) <= snippetChars {
		return chunk
	}
	return string(runes[:snippetChars]) + "…"
}

// Cosine computes cosine similarity with a small epsilon in the
// denominator so zero vectors yield 0 instead of dividing by zero.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}

// maxCosine returns the best similarity of vec against all candidates.
func maxCosine(vec []float32, candidates [][]float32) float64 {
	best := 0.0
	for _, c := range candidates {
		if cos := Cosine(vec, c); cos > best {
			best = cos
		}
	}
	return best
}
