// Package cache provides a memoising, rate-limited decorator around an
// embedding service. Overlap scanning embeds the same chunk text
// repeatedly across pages; the cache makes repeats free and the limiter
// keeps the provider happy on misses.
package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	// DefaultSize is the cache capacity in entries.
	DefaultSize = 4096

	// DefaultKeyChars is the prefix length used as the cache key and
	// as the text actually sent to the provider. Chunks rarely differ
	// only past this point, and shorter inputs keep embed calls cheap.
	DefaultKeyChars = 500

	// DefaultRate is the sustained provider call rate per second.
	DefaultRate = 1.0

	// DefaultBurst is the provider call burst size.
	DefaultBurst = 2
)

// Config holds configuration for the embedding cache.
type Config struct {
	// Size is the cache capacity in entries (default: 4096).
	Size int

	// KeyChars is the text prefix length used as cache key (default: 500).
	KeyChars int

	// Rate is the sustained provider call rate per second (default: 1).
	Rate float64

	// Burst is the provider call burst size (default: 2).
	Burst int
}

// EmbeddingService memoises embeddings from a delegate service in a
// bounded LRU cache and paces cache misses with a rate limiter. The
// LRU is safe for concurrent use.
type EmbeddingService struct {
	delegate driven.EmbeddingService
	cache    *lru.Cache[string, []float32]
	limiter  *rate.Limiter
	keyChars int
}

// New wraps delegate in a memoising cache.
func New(delegate driven.EmbeddingService, cfg Config) (*EmbeddingService, error) {
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if cfg.KeyChars <= 0 {
		cfg.KeyChars = DefaultKeyChars
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	c, err := lru.New[string, []float32](cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &EmbeddingService{
		delegate: delegate,
		cache:    c,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		keyChars: cfg.KeyChars,
	}, nil
}

// Embed returns the cached embedding for the text's key prefix, calling
// the delegate on a miss.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	key := s.key(text)
	if vec, ok := s.cache.Get(key); ok {
		return vec, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	vec, err := s.delegate.Embed(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, vec)
	return vec, nil
}

// EmbedBatch serves what it can from the cache and sends only the
// misses to the delegate, in one batch call.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))

	var (
		missKeys    []string
		missIndices []int
	)
	for i, text := range texts {
		key := s.key(text)
		if vec, ok := s.cache.Get(key); ok {
			vecs[i] = vec
			continue
		}
		missKeys = append(missKeys, key)
		missIndices = append(missIndices, i)
	}
	if len(missKeys) == 0 {
		return vecs, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	fresh, err := s.delegate.EmbedBatch(ctx, missKeys)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missKeys) {
		return nil, fmt.Errorf("cache: expected %d embeddings, got %d", len(missKeys), len(fresh))
	}

	for j, vec := range fresh {
		s.cache.Add(missKeys[j], vec)
		vecs[missIndices[j]] = vec
	}
	return vecs, nil
}

// Len returns the number of cached entries.
func (s *EmbeddingService) Len() int {
	return s.cache.Len()
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.delegate.Dimensions()
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.delegate.ModelName()
}

// Ping validates the delegate is reachable.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.delegate.Ping(ctx)
}

// Close releases the delegate's resources.
func (s *EmbeddingService) Close() error {
	return s.delegate.Close()
}

// key truncates text to the configured prefix length.
func (s *EmbeddingService) key(text string) string {
	runes := []rune(text)
	if len(runes) <= s.keyChars {
		return text
	}
	return string(runes[:s.keyChars])
}
