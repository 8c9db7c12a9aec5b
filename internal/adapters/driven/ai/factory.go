// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/veridoc-cli/internal/adapters/driven/embedding/cache"
	geminiembed "github.com/custodia-labs/veridoc-cli/internal/adapters/driven/embedding/gemini"
	openaiembed "github.com/custodia-labs/veridoc-cli/internal/adapters/driven/embedding/openai"
	geminillm "github.com/custodia-labs/veridoc-cli/internal/adapters/driven/llm/gemini"
	openaillm "github.com/custodia-labs/veridoc-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
)

// Provider names accepted in settings.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service,
// validates connectivity and wraps it in the memoising cache. Returns
// (nil, nil) when embeddings are not configured.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	cached, err := cache.New(svc, cache.Config{})
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	return cached, nil
}

// CreateAndValidateGenerativeService creates a generative service and
// validates connectivity. Returns (nil, nil) when not configured.
func CreateAndValidateGenerativeService(settings *domain.LLMSettings) (driven.GenerativeService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateGenerativeService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the appropriate embedding service
// based on settings.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case ProviderGemini:
		return geminiembed.NewEmbeddingService(geminiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", settings.Provider)
	}
}

// CreateGenerativeService creates the appropriate generative service
// based on settings.
func CreateGenerativeService(settings *domain.LLMSettings) (driven.GenerativeService, error) {
	switch settings.Provider {
	case ProviderGemini:
		return geminillm.New(geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case ProviderOpenAI:
		return openaillm.New(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unknown generative provider: %q", settings.Provider)
	}
}
