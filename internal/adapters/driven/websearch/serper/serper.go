// Package serper provides a web search adapter using the Serper API,
// which proxies Google results.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.WebSearchProvider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://google.serper.dev"
	DefaultTimeout = 10 * time.Second

	// DefaultRate is the sustained query rate per second. Serper
	// accounts throttle hard, so stay conservative.
	DefaultRate = 2.0

	// DefaultBurst is the query burst size.
	DefaultBurst = 1
)

// Config holds configuration for the Serper provider.
type Config struct {
	// APIKey is the Serper API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://google.serper.dev).
	BaseURL string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration

	// Rate is the sustained query rate per second (default: 2).
	Rate float64
}

// Provider executes search queries against the Serper API.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// searchRequest is the Serper /search request format.
type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

// searchResponse is the Serper /search response format; only the
// organic results are consumed.
type searchResponse struct {
	Organic []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
	Message string `json:"message,omitempty"`
}

// New creates a new Serper provider.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serper: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}

	return &Provider{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), DefaultBurst),
	}, nil
}

// Search returns up to limit organic results for the query.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]driven.SearchResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(searchRequest{Query: query, Num: limit})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/search",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]driven.SearchResult, 0, len(searchResp.Organic))
	for _, r := range searchResp.Organic {
		if r.Link == "" {
			continue
		}
		results = append(results, driven.SearchResult{
			URL:     r.Link,
			Title:   r.Title,
			Snippet: r.Snippet,
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Close releases resources.
func (p *Provider) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
