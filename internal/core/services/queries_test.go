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

const queryDoc = `Neural Ranking for Archival Search
This work studies neural ranking models applied to archival search.
Archival search collections differ from web collections in vocabulary drift.
We evaluate ranking quality across three archival corpora.`

func TestQueryBuilder_TitleComesFirst(t *testing.T) {
	llm := &mockGenerative{reply: "neural ranking models\narchival search collections"}
	builder := NewQueryBuilder(llm, plainPrompts(), domain.DefaultTuning())

	queries := builder.BuildQueries(context.Background(), queryDoc)
	require.NotEmpty(t, queries)
	assert.Equal(t, "Neural Ranking for Archival Search", queries[0])
	assert.Contains(t, queries, "neural ranking models")
	assert.Contains(t, queries, "archival search collections")
}

func TestQueryBuilder_DeduplicatesCaseInsensitively(t *testing.T) {
	llm := &mockGenerative{reply: "neural ranking for archival search\nvocabulary drift"}
	builder := NewQueryBuilder(llm, plainPrompts(), domain.DefaultTuning())

	queries := builder.BuildQueries(context.Background(), queryDoc)
	require.Len(t, queries, 2)
	assert.Equal(t, "Neural Ranking for Archival Search", queries[0])
	assert.Equal(t, "vocabulary drift", queries[1])
}

func TestQueryBuilder_CapsQueryCount(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = strings.Repeat("phrase ", i+1)
	}
	llm := &mockGenerative{reply: strings.Join(lines, "\n")}
	tuning := domain.DefaultTuning()
	tuning.MaxQueries = 3
	builder := NewQueryBuilder(llm, plainPrompts(), tuning)

	queries := builder.BuildQueries(context.Background(), queryDoc)
	assert.Len(t, queries, 3)
}

func TestQueryBuilder_DropsDegenerateLines(t *testing.T) {
	llm := &mockGenerative{reply: "ok?\n\n- \nvocabulary drift in archives\n"}
	builder := NewQueryBuilder(llm, plainPrompts(), domain.DefaultTuning())

	queries := builder.BuildQueries(context.Background(), queryDoc)
	require.Len(t, queries, 2)
	assert.Equal(t, "vocabulary drift in archives", queries[1])
}

func TestQueryBuilder_FallsBackToKeywords(t *testing.T) {
	llm := &mockGenerative{err: errors.New("model overloaded")}
	builder := NewQueryBuilder(llm, plainPrompts(), domain.DefaultTuning())

	queries := builder.BuildQueries(context.Background(), queryDoc)
	require.Greater(t, len(queries), 1)
	// Frequent content words survive, stopwords and filler do not.
	assert.Contains(t, queries, "archival")
	assert.NotContains(t, queries, "this")
	assert.NotContains(t, queries, "from")
}

func TestQueryBuilder_NilModelUsesKeywords(t *testing.T) {
	builder := NewQueryBuilder(nil, plainPrompts(), domain.DefaultTuning())

	queries := builder.BuildQueries(context.Background(), queryDoc)
	require.NotEmpty(t, queries)
	assert.Equal(t, "Neural Ranking for Archival Search", queries[0])
	assert.Contains(t, queries, "ranking")
}

func TestQueryBuilder_AbstractDrivesPromptSample(t *testing.T) {
	text := `Drift Detection in Long-Lived Streams

Abstract
We present a detector for concept drift in long-lived event streams.
The detector uses adaptive windows over prediction error.

Introduction
Event streams change over time, which invalidates trained models.`

	llm := &mockGenerative{reply: "concept drift detection"}
	builder := NewQueryBuilder(llm, plainPrompts(), domain.DefaultTuning())
	builder.BuildQueries(context.Background(), text)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "concept drift in long-lived event streams")
	assert.NotContains(t, llm.prompts[0], "invalidates trained models")
}

func TestQueryBuilder_TitleTruncated(t *testing.T) {
	longTitle := strings.Repeat("word ", 60)
	builder := NewQueryBuilder(nil, plainPrompts(), domain.DefaultTuning())

	queries := builder.BuildQueries(context.Background(), longTitle+"\nbody text here.")
	require.NotEmpty(t, queries)
	assert.LessOrEqual(t, len([]rune(queries[0])), 120)
}
