package driven

import "context"

// GenerativeService provides free-form text generation for query
// building and AI-likelihood estimation. This is an optional service -
// when nil, each call site applies its own fallback (keyword queries,
// neutral AI probability).
//
// Implementations may include:
//   - Gemini (gemini-1.5-flash)
//   - OpenAI (gpt-4o-mini)
type GenerativeService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
