package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Document: domain.Document{Title: "Window Functions in Stream Processing"},
		Stats:    domain.Stats{Words: 420, Sentences: 24, AvgSentenceLen: 17.5},
		Keywords: []domain.Keyword{{Word: "window", Count: 12}, {Word: "stream", Count: 9}},
		Queries:  []string{"Window Functions in Stream Processing", "sliding window aggregation"},
		Hits: []domain.PageHit{
			{URL: "https://example.com/windows", Title: "Windowing basics"},
		},
		Overlaps: []domain.Overlap{
			{Snippet: "A sliding window advances one element at a time…", LexicalScore: 88, SemanticScore: 0.91, URL: "https://example.com/windows"},
		},
		Originality:   72.4,
		AIProbability: 35,
		AIReason:      "Varied sentence rhythm – likely human.",
	}
}

func TestWriter_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	writer := New(dir)

	path, err := writer.Write(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 500)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestWriter_NoOverlaps(t *testing.T) {
	writer := New(t.TempDir())
	result := sampleResult()
	result.Overlaps = nil
	result.Originality = 100

	path, err := writer.Write(context.Background(), result)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriter_CancelledContext(t *testing.T) {
	writer := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := writer.Write(ctx, sampleResult())
	require.ErrorIs(t, err, context.Canceled)
}
