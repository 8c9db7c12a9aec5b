package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// Embedding failures are fatal to the running analysis: the scanner
// does not catch them, they surface to the top-level caller.
//
// Implementations may include:
//   - Gemini (embedding-001)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//
// Adapters are expected to be wrapped in the memoising cache decorator
// (internal/adapters/driven/embedding/cache) before services see them.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
