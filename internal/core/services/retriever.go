package services

import (
	"context"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veridoc-cli/internal/logger"
)

const (
	// resultsPerQuery is how many organic results one search requests.
	resultsPerQuery = 10

	// maxPageChars caps the cleaned text kept per fetched page.
	maxPageChars = 30_000
)

// PageCleaner turns raw page bytes into plain text, bounded to limit
// characters. The HTML normaliser provides the production implementation.
type PageCleaner interface {
	Clean(raw []byte, limit int) string
}

// RetrievalResult is the complete outcome of one search run.
type RetrievalResult struct {
	// Hits is the retrieved page set in insertion order, deduplicated
	// by URL and capped at Tuning.MaxPages.
	Hits []domain.PageHit

	// Queries is the query set that was used, returned even when the
	// search provider is not configured.
	Queries []string

	// Report records every search and fetch attempt.
	Report domain.FetchReport
}

// Retriever executes the query set against the web search provider and
// fetches candidate pages. Per-query and per-fetch failures are recorded
// and skipped; only context cancellation aborts a run.
type Retriever struct {
	search  driven.WebSearchProvider // optional
	fetcher driven.PageFetcher
	cleaner PageCleaner
	builder *QueryBuilder
	tuning  domain.Tuning

	// OnPage, when set, is invoked after each stored hit with the
	// running hit count. Used for CLI progress reporting.
	OnPage func(hits int)
}

// NewRetriever creates a retriever. The search parameter is optional
// (can be nil); retrieval then degrades to an empty hit set.
func NewRetriever(
	search driven.WebSearchProvider,
	fetcher driven.PageFetcher,
	cleaner PageCleaner,
	builder *QueryBuilder,
	tuning domain.Tuning,
) *Retriever {
	return &Retriever{
		search:  search,
		fetcher: fetcher,
		cleaner: cleaner,
		builder: builder,
		tuning:  tuning.Normalised(),
	}
}

// Retrieve builds the query set and collects candidate pages. A nil
// search provider is a degraded-but-successful outcome: the queries are
// still returned with an empty hit set.
func (r *Retriever) Retrieve(ctx context.Context, text string) (*RetrievalResult, error) {
	result := &RetrievalResult{
		Queries: r.builder.BuildQueries(ctx, text),
	}

	logger.Section("Web Retrieval")
	if r.search == nil {
		logger.Warn("No search provider configured, skipping web retrieval")
		return result, nil
	}

	seen := make(map[string]struct{})
	for _, query := range result.Queries {
		if len(result.Hits) >= r.tuning.MaxPages {
			logger.Debug("Reached page cap (%d), stopping search", r.tuning.MaxPages)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Debug("Searching: %q", query)
		candidates, err := r.search.Search(ctx, query, resultsPerQuery)
		if err != nil {
			logger.Warn("Search failed for %q: %v", query, err)
			result.Report.Add(domain.FetchRecord{
				Kind:   domain.FetchSearch,
				Target: query,
				Status: domain.FetchFailed,
				Err:    err.Error(),
			})
			continue
		}
		result.Report.Add(domain.FetchRecord{
			Kind:   domain.FetchSearch,
			Target: query,
			Status: domain.FetchOK,
		})

		for _, cand := range candidates {
			if len(result.Hits) >= r.tuning.MaxPages {
				break
			}
			if cand.URL == "" {
				continue
			}
			if _, dup := seen[cand.URL]; dup {
				continue
			}
			seen[cand.URL] = struct{}{}

			hit, rec := r.fetchPage(ctx, cand)
			result.Report.Add(rec)
			if rec.Status != domain.FetchOK {
				continue
			}
			result.Hits = append(result.Hits, hit)
			if r.OnPage != nil {
				r.OnPage(len(result.Hits))
			}
		}
	}

	logger.Info("Retrieved %d pages from %d queries (%d failures)",
		len(result.Hits), len(result.Queries), result.Report.Failures())
	return result, nil
}

// fetchPage fetches and cleans one candidate. Fetch errors and empty
// bodies discard the candidate without aborting the batch.
func (r *Retriever) fetchPage(ctx context.Context, cand driven.SearchResult) (domain.PageHit, domain.FetchRecord) {
	rec := domain.FetchRecord{Kind: domain.FetchPage, Target: cand.URL}

	raw, err := r.fetcher.Fetch(ctx, cand.URL)
	if err != nil {
		logger.Debug("Fetch failed for %s: %v", cand.URL, err)
		rec.Status = domain.FetchFailed
		rec.Err = err.Error()
		return domain.PageHit{}, rec
	}

	text := r.cleaner.Clean(raw, maxPageChars)
	if text == "" {
		logger.Debug("Discarding %s: no text content", cand.URL)
		rec.Status = domain.FetchEmpty
		return domain.PageHit{}, rec
	}

	rec.Status = domain.FetchOK
	return domain.PageHit{
		URL:     cand.URL,
		Title:   cand.Title,
		Snippet: cand.Snippet,
		Text:    text,
	}, rec
}
