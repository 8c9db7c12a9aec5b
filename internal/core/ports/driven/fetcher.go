package driven

import "context"

// PageFetcher retrieves the raw bytes of a web page.
// Implementations own their request pacing and timeouts so callers can
// fan out safely without exceeding aggregate rate limits.
type PageFetcher interface {
	// Fetch returns the response body for the URL. Errors never abort
	// a retrieval batch; the caller records them and moves on.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
