// Package fetch provides the HTTP page fetcher used during retrieval.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	// DefaultTimeout is short on purpose: a slow page is not worth
	// stalling the whole retrieval batch for.
	DefaultTimeout = 8 * time.Second

	// DefaultMaxBytes caps the bytes read per page.
	DefaultMaxBytes = 2 << 20 // 2 MiB

	// DefaultRate is the sustained fetch rate per second.
	DefaultRate = 5.0

	// DefaultBurst is the fetch burst size.
	DefaultBurst = 5

	// DefaultUserAgent identifies the client. Some hosts refuse
	// requests with no browser-looking agent at all.
	DefaultUserAgent = "Mozilla/5.0 (compatible; veridoc/1.0)"
)

// Config holds configuration for the page fetcher.
type Config struct {
	// Timeout is the per-request timeout (default: 8s).
	Timeout time.Duration

	// MaxBytes caps the bytes read per page (default: 2 MiB).
	MaxBytes int64

	// Rate is the sustained fetch rate per second (default: 5).
	Rate float64

	// UserAgent overrides the User-Agent header.
	UserAgent string
}

// Fetcher retrieves raw page bytes over HTTP with its own pacing and
// size limits, so retrieval can iterate candidates without extra care.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	maxBytes  int64
	userAgent string
}

// New creates a new page fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(cfg.Rate), DefaultBurst),
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
}

// Fetch returns the response body for the URL, truncated at the
// configured byte cap.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
