package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	embedCalls int
	batchCalls int
	batched    [][]string
}

func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	c.embedCalls++
	return []float32{float32(len(text))}, nil
}

func (c *countingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	c.batchCalls++
	c.batched = append(c.batched, texts)
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = []float32{float32(len(t))}
	}
	return vecs, nil
}

func (c *countingEmbedder) Dimensions() int            { return 1 }
func (c *countingEmbedder) ModelName() string          { return "counting" }
func (c *countingEmbedder) Ping(context.Context) error { return nil }
func (c *countingEmbedder) Close() error               { return nil }

// fastConfig keeps the limiter out of the way in tests.
func fastConfig() Config {
	return Config{Rate: 1000, Burst: 1000}
}

func TestCache_RepeatHitsDelegateOnce(t *testing.T) {
	delegate := &countingEmbedder{}
	svc, err := New(delegate, fastConfig())
	require.NoError(t, err)
	ctx := context.Background()

	v1, err := svc.Embed(ctx, "the same chunk")
	require.NoError(t, err)
	v2, err := svc.Embed(ctx, "the same chunk")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, delegate.embedCalls)
	assert.Equal(t, 1, svc.Len())
}

func TestCache_KeyIsTruncatedPrefix(t *testing.T) {
	delegate := &countingEmbedder{}
	cfg := fastConfig()
	cfg.KeyChars = 10
	svc, err := New(delegate, cfg)
	require.NoError(t, err)
	ctx := context.Background()

	// Same first ten characters, different tails: one delegate call.
	_, err = svc.Embed(ctx, "abcdefghij-first-tail")
	require.NoError(t, err)
	_, err = svc.Embed(ctx, "abcdefghij-second-tail")
	require.NoError(t, err)
	assert.Equal(t, 1, delegate.embedCalls)
}

func TestCache_BatchSendsOnlyMisses(t *testing.T) {
	delegate := &countingEmbedder{}
	svc, err := New(delegate, fastConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Embed(ctx, "cached ahead of time")
	require.NoError(t, err)

	vecs, err := svc.EmbedBatch(ctx, []string{"fresh one", "cached ahead of time", "fresh two"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.NotNil(t, v)
	}

	require.Equal(t, 1, delegate.batchCalls)
	assert.Equal(t, []string{"fresh one", "fresh two"}, delegate.batched[0])
	assert.Equal(t, 3, svc.Len())
}

func TestCache_BatchAllCachedSkipsDelegate(t *testing.T) {
	delegate := &countingEmbedder{}
	svc, err := New(delegate, fastConfig())
	require.NoError(t, err)
	ctx := context.Background()

	texts := []string{"alpha", "beta"}
	_, err = svc.EmbedBatch(ctx, texts)
	require.NoError(t, err)
	_, err = svc.EmbedBatch(ctx, texts)
	require.NoError(t, err)
	assert.Equal(t, 1, delegate.batchCalls)
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	delegate := &countingEmbedder{}
	cfg := fastConfig()
	cfg.Size = 2
	svc, err := New(delegate, cfg)
	require.NoError(t, err)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Embed(ctx, text)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, svc.Len())

	// "one" was evicted, so it costs another delegate call.
	_, err = svc.Embed(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, 4, delegate.embedCalls)
}

func TestCache_DelegatePassthrough(t *testing.T) {
	delegate := &countingEmbedder{}
	svc, err := New(delegate, fastConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Dimensions())
	assert.Equal(t, "counting", svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}

func TestCache_LongTextSentTruncated(t *testing.T) {
	delegate := &countingEmbedder{}
	cfg := fastConfig()
	cfg.KeyChars = 8
	svc, err := New(delegate, cfg)
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{strings.Repeat("z", 100)})
	require.NoError(t, err)
	require.Len(t, delegate.batched, 1)
	assert.Len(t, delegate.batched[0][0], 8)
}
