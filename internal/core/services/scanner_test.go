package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
)

// Four sentences, so a three-sentence window yields two chunks.
const scanDoc = "The quick brown fox jumps over the lazy dog. " +
	"Pack my box with five dozen liquor jugs. " +
	"How vexingly quick daft zebras jump. " +
	"Sphinx of black quartz judge my vow."

func unitVec(_ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func TestScanner_IdenticalPageIsFlagged(t *testing.T) {
	embedder := &mockEmbedder{embedFn: unitVec}
	scanner := NewScanner(embedder, domain.DefaultTuning())

	hits := []domain.PageHit{{URL: "https://example.com/a", Text: scanDoc}}
	originality, overlaps, err := scanner.Scan(context.Background(), scanDoc, hits)
	require.NoError(t, err)

	// Both page chunks repeat document sentences verbatim.
	require.Len(t, overlaps, 2)
	for _, o := range overlaps {
		assert.Equal(t, 100, o.LexicalScore)
		assert.InDelta(t, 1.0, o.SemanticScore, 0.01)
		assert.Equal(t, "https://example.com/a", o.URL)
		assert.NotContains(t, o.Snippet, "…")
	}

	// Adjacent windows share sentences, so the overlapped-word sum
	// exceeds the document length and the score clamps at zero.
	assert.Equal(t, 0.0, originality)
	assert.Equal(t, 1, embedder.batchCalls)
	assert.Equal(t, 2, embedder.embedCalls)
}

func TestScanner_LexicalGateSkipsEmbedding(t *testing.T) {
	embedder := &mockEmbedder{embedFn: unitVec}
	tuning := domain.DefaultTuning()
	tuning.FuzzThreshold = 70
	scanner := NewScanner(embedder, tuning)

	// Entirely different vocabulary: the token-set ratio stays far
	// below the threshold, so the page chunks must never be embedded.
	page := "Seventeen wombats deliberated quietly under moonlight. " +
		"Several porcupines nibbled bamboo shoots all evening. " +
		"Icy winds howled across the empty tundra plain."
	hits := []domain.PageHit{{URL: "https://example.com/b", Text: page}}

	originality, overlaps, err := scanner.Scan(context.Background(), scanDoc, hits)
	require.NoError(t, err)
	assert.Empty(t, overlaps)
	assert.Equal(t, 100.0, originality)
	assert.Equal(t, 1, embedder.batchCalls)
	assert.Zero(t, embedder.embedCalls)
}

func TestScanner_LowCosineIsExcluded(t *testing.T) {
	embedder := &mockEmbedder{embedFn: func(text string) ([]float32, error) {
		// Every document chunk contains "quick"; the page repeats the
		// text without it and embeds orthogonally, so the semantic
		// gate rejects both page chunks.
		if strings.Contains(text, "quick") {
			return []float32{1, 0, 0}, nil
		}
		return []float32{0, 1, 0}, nil
	}}
	scanner := NewScanner(embedder, domain.DefaultTuning())

	page := strings.ReplaceAll(scanDoc, "quick", "slow")
	hits := []domain.PageHit{{URL: "https://example.com/c", Text: page}}

	originality, overlaps, err := scanner.Scan(context.Background(), scanDoc, hits)
	require.NoError(t, err)
	assert.Empty(t, overlaps)
	assert.Equal(t, 100.0, originality)
	assert.Equal(t, 2, embedder.embedCalls)
}

func TestScanner_PerURLCap(t *testing.T) {
	embedder := &mockEmbedder{embedFn: unitVec}
	tuning := domain.DefaultTuning()
	tuning.MaxOverlapsPerURL = 1
	scanner := NewScanner(embedder, tuning)

	hits := []domain.PageHit{{URL: "https://example.com/d", Text: scanDoc}}
	_, overlaps, err := scanner.Scan(context.Background(), scanDoc, hits)
	require.NoError(t, err)

	assert.Len(t, overlaps, 1)
	// The second chunk is never evaluated once the cap is reached.
	assert.Equal(t, 1, embedder.embedCalls)
}

func TestScanner_OverlapsSortedByScores(t *testing.T) {
	// Three single-chunk pages with distinct score profiles:
	// an exact excerpt (lexical 100, cosine 1.0), a scrambled
	// permutation of document words (lexical 100, lower cosine via
	// the embedder), and a page with some foreign tokens (lexical
	// below 100, cosine 1.0).
	topPage := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs. " +
		"How vexingly quick daft zebras jump."
	tiePage := "Dog lazy the over jumps fox brown quick. " +
		"Jugs liquor dozen five with box my pack. " +
		"Zebras daft quick vexingly how jump."
	midPage := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with wombat quokka numbat jugs. " +
		"How vexingly quick daft zebras jump."

	embedder := &mockEmbedder{embedFn: func(text string) ([]float32, error) {
		if strings.Contains(text, "Zebras daft") {
			return []float32{0.8, 0.6, 0}, nil
		}
		return []float32{1, 0, 0}, nil
	}}
	scanner := NewScanner(embedder, domain.DefaultTuning())

	hits := []domain.PageHit{
		{URL: "https://example.com/mid", Text: midPage},
		{URL: "https://example.com/tie", Text: tiePage},
		{URL: "https://example.com/top", Text: topPage},
	}
	_, overlaps, err := scanner.Scan(context.Background(), scanDoc, hits)
	require.NoError(t, err)

	require.Len(t, overlaps, 3)
	assert.Equal(t, "https://example.com/top", overlaps[0].URL)
	assert.Equal(t, "https://example.com/tie", overlaps[1].URL)
	assert.Equal(t, "https://example.com/mid", overlaps[2].URL)

	// Lexical score orders first; the permuted page shares the
	// document's token set and ties at 100.
	assert.Equal(t, 100, overlaps[0].LexicalScore)
	assert.Equal(t, 100, overlaps[1].LexicalScore)
	assert.Less(t, overlaps[2].LexicalScore, 100)

	// Within the lexical tie, cosine breaks downward.
	assert.InDelta(t, 1.0, overlaps[0].SemanticScore, 0.01)
	assert.InDelta(t, 0.8, overlaps[1].SemanticScore, 0.01)
	assert.Greater(t, overlaps[0].SemanticScore, overlaps[1].SemanticScore)
}

func TestScanner_TooFewSentences(t *testing.T) {
	embedder := &mockEmbedder{embedFn: unitVec}
	scanner := NewScanner(embedder, domain.DefaultTuning())

	originality, overlaps, err := scanner.Scan(context.Background(), "Just one sentence here.", nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, originality)
	assert.Nil(t, overlaps)
	assert.Zero(t, embedder.batchCalls)
}

func TestScanner_NoEmbedderSkipsScan(t *testing.T) {
	scanner := NewScanner(nil, domain.DefaultTuning())

	originality, overlaps, err := scanner.Scan(context.Background(), scanDoc, []domain.PageHit{
		{URL: "https://example.com/a", Text: scanDoc},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, originality)
	assert.Nil(t, overlaps)
}

func TestScanner_EmbeddingFailureAborts(t *testing.T) {
	embedder := &mockEmbedder{embedFn: func(string) ([]float32, error) {
		return nil, errors.New("quota exceeded")
	}}
	scanner := NewScanner(embedder, domain.DefaultTuning())

	_, _, err := scanner.Scan(context.Background(), scanDoc, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestScanner_EmptyPageTextIsSkipped(t *testing.T) {
	embedder := &mockEmbedder{embedFn: unitVec}
	scanner := NewScanner(embedder, domain.DefaultTuning())

	hits := []domain.PageHit{{URL: "https://example.com/e", Text: ""}}
	originality, overlaps, err := scanner.Scan(context.Background(), scanDoc, hits)
	require.NoError(t, err)
	assert.Empty(t, overlaps)
	assert.Equal(t, 100.0, originality)
}

func TestOriginalityScore(t *testing.T) {
	assert.Equal(t, 100.0, originalityScore(0, 200))
	assert.Equal(t, 50.0, originalityScore(100, 200))
	assert.Equal(t, 0.0, originalityScore(400, 200))
	// Empty documents must not divide by zero.
	assert.Equal(t, 100.0, originalityScore(0, 0))
}

func TestSnippet(t *testing.T) {
	short := "short chunk"
	assert.Equal(t, short, snippet(short))

	long := strings.Repeat("a", 300)
	got := snippet(long)
	assert.Equal(t, snippetChars+1, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{1, 2, 3}), 0.001)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 0.001)
	// Zero vectors yield zero rather than NaN.
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{0, 0}))
}
