package driven

import "context"

// WebSearchProvider executes a single query against an external search
// API. This is an optional service - when nil, web retrieval returns an
// empty hit set and analyses run in degraded mode.
//
// Implementations may include:
//   - Serper (Google results via google.serper.dev)
type WebSearchProvider interface {
	// Search returns up to limit organic results for the query.
	// Network errors, non-success statuses and malformed bodies are
	// returned as errors; callers treat them as per-query failures
	// and continue with the next query.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Close releases resources.
	Close() error
}

// SearchResult is one candidate result from the search provider.
type SearchResult struct {
	// URL is the result link.
	URL string

	// Title is the result title.
	Title string

	// Snippet is the short excerpt shown by the provider.
	Snippet string
}
