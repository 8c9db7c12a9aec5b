package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTuning_NormalisedFillsDefaults(t *testing.T) {
	tuning := Tuning{}.Normalised()

	assert.Equal(t, DefaultMaxQueries, tuning.MaxQueries)
	assert.Equal(t, DefaultMaxPages, tuning.MaxPages)
	assert.Equal(t, DefaultWindowSentences, tuning.WindowSentences)
	assert.Equal(t, DefaultFuzzThreshold, tuning.FuzzThreshold)
	assert.Equal(t, DefaultCosineThreshold, tuning.CosineThreshold)
	assert.Equal(t, DefaultMaxOverlapsPerURL, tuning.MaxOverlapsPerURL)
}

func TestTuning_NormalisedKeepsExplicitValues(t *testing.T) {
	tuning := Tuning{
		MaxQueries:      3,
		FuzzThreshold:   80,
		CosineThreshold: 0.9,
	}.Normalised()

	assert.Equal(t, 3, tuning.MaxQueries)
	assert.Equal(t, 80, tuning.FuzzThreshold)
	assert.Equal(t, 0.9, tuning.CosineThreshold)
	assert.Equal(t, DefaultMaxPages, tuning.MaxPages)
}

func TestSearchSettings_IsConfigured(t *testing.T) {
	assert.False(t, (*SearchSettings)(nil).IsConfigured())
	assert.False(t, (&SearchSettings{}).IsConfigured())
	assert.True(t, (&SearchSettings{APIKey: "key"}).IsConfigured())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.False(t, (*EmbeddingSettings)(nil).IsConfigured())
	assert.False(t, (&EmbeddingSettings{Provider: "gemini"}).IsConfigured())
	assert.False(t, (&EmbeddingSettings{APIKey: "key"}).IsConfigured())
	assert.True(t, (&EmbeddingSettings{Provider: "gemini", APIKey: "key"}).IsConfigured())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, (*LLMSettings)(nil).IsConfigured())
	assert.True(t, (&LLMSettings{Provider: "openai", APIKey: "key"}).IsConfigured())
}
