package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
)

// mockEmbedder is a hand-rolled EmbeddingService. Embed and EmbedBatch
// route through embedFn so tests can shape vectors per text; call
// counts are recorded for gating assertions.
type mockEmbedder struct {
	mu         sync.Mutex
	embedFn    func(text string) ([]float32, error)
	embedCalls int
	batchCalls int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls++
	m.mu.Unlock()
	return m.embedFn(text)
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.mu.Unlock()
	vecs := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.embedFn(t)
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, v)
	}
	return vecs, nil
}

func (m *mockEmbedder) Dimensions() int              { return 3 }
func (m *mockEmbedder) ModelName() string            { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockGenerative records the prompts it was given and replies with a
// fixed string or error.
type mockGenerative struct {
	reply   string
	err     error
	prompts []string
}

func (m *mockGenerative) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockGenerative) ModelName() string            { return "mock-llm" }
func (m *mockGenerative) Ping(_ context.Context) error { return nil }
func (m *mockGenerative) Close() error                 { return nil }

// mockPromptStore serves templates from a map.
type mockPromptStore struct {
	templates map[string]string
	err       error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.templates[name], nil
}

func (m *mockPromptStore) Reload() {}

// plainPrompts returns a store with minimal %s templates for both
// well-known prompts.
func plainPrompts() *mockPromptStore {
	return &mockPromptStore{templates: map[string]string{
		driven.PromptQueryGeneration: "Queries for:\n%s",
		driven.PromptAIDetection:     "Estimate for:\n%s",
	}}
}

// mockSearch replays canned results per query; all serves queries with
// no dedicated entry.
type mockSearch struct {
	results map[string][]driven.SearchResult
	all     []driven.SearchResult
	errs    map[string]error
	queries []string
}

func (m *mockSearch) Search(_ context.Context, query string, _ int) ([]driven.SearchResult, error) {
	m.queries = append(m.queries, query)
	if err := m.errs[query]; err != nil {
		return nil, err
	}
	if r, ok := m.results[query]; ok {
		return r, nil
	}
	return m.all, nil
}

func (m *mockSearch) Close() error { return nil }

// mockFetcher serves page bodies from a map.
type mockFetcher struct {
	pages   map[string][]byte
	errs    map[string]error
	fetched []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	m.fetched = append(m.fetched, url)
	if err := m.errs[url]; err != nil {
		return nil, err
	}
	return m.pages[url], nil
}

// mockCleaner treats the raw bytes as already-plain text.
type mockCleaner struct{}

func (mockCleaner) Clean(raw []byte, limit int) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > limit {
		text = text[:limit]
	}
	return text
}
