package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoContent indicates the input document has no usable text.
	// The analysis short-circuits before any external call.
	ErrNoContent = errors.New("no document content")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown input format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSearchUnavailable indicates the web search provider is not
	// configured. Retrieval degrades to an empty hit set.
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Overlap scanning cannot run without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generative model is not
	// configured. Query generation and AI detection degrade.
	ErrLLMUnavailable = errors.New("generative model unavailable")
)
