package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/poiesic/conceptmap/ai/mock"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Millisecond,
		Multiplier:  1,
	}
}

func newTestClient(t *testing.T) *resilience.Client {
	t.Helper()
	client, err := resilience.NewClient(4,
		resilience.WithRetry(fastRetry()),
		resilience.WithCallTimeout(100*time.Millisecond),
	)
	require.NoError(t, err)
	return client
}

func TestFallbackVector(t *testing.T) {
	t.Run("has requested dimension", func(t *testing.T) {
		assert.Len(t, fallbackVector("plan the budget", 384), 384)
		assert.Len(t, fallbackVector("plan the budget", 16), 16)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		a := fallbackVector("we should use social media", 64)
		b := fallbackVector("we should use social media", 64)
		assert.Equal(t, a, b)
	})

	t.Run("distinct texts get distinct vectors", func(t *testing.T) {
		a := fallbackVector("marketing strategy for launch", 64)
		b := fallbackVector("database schema migration", 64)
		assert.NotEqual(t, a, b)
	})

	t.Run("unit length", func(t *testing.T) {
		vec := fallbackVector("some words to hash", 32)
		var sum float64
		for _, x := range vec {
			sum += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, sum, 1e-5)
	})

	t.Run("empty text still gets a vector", func(t *testing.T) {
		vec := fallbackVector("", 8)
		require.Len(t, vec, 8)
		assert.Equal(t, float32(1), vec[0])
	})
}

func TestEmbedUnitsLive(t *testing.T) {
	provider := mock.NewProvider()
	provider.MockEmbedder().Dim = 8

	p, err := New(provider, WithEmbeddingDim(8), WithRetry(fastRetry()))
	require.NoError(t, err)
	defer p.Release()

	units := []*core.TextUnit{
		{ID: 0, Normalized: "first unit"},
		{ID: 1, Normalized: "second unit"},
	}
	client := newTestClient(t)
	p.embedUnits(context.Background(), client, units)

	for _, u := range units {
		assert.Len(t, u.Embedding, 8)
	}
	assert.True(t, client.AIProcessed())
}

func TestEmbedUnitsFallbackOnFailure(t *testing.T) {
	provider := mock.NewProvider()
	provider.MockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service unavailable")
	}

	p, err := New(provider, WithEmbeddingDim(16), WithRetry(fastRetry()))
	require.NoError(t, err)
	defer p.Release()

	units := []*core.TextUnit{
		{ID: 0, Normalized: "alpha beta"},
		{ID: 1, Normalized: "gamma delta"},
		{ID: 2, Normalized: "alpha beta"}, // duplicate normalized text
	}
	client := newTestClient(t)
	p.embedUnits(context.Background(), client, units)

	for _, u := range units {
		require.Len(t, u.Embedding, 16)
	}
	assert.Equal(t, units[0].Embedding, units[2].Embedding)
	assert.Equal(t, units[0].Embedding, fallbackVector("alpha beta", 16))
	assert.False(t, client.AIProcessed())
}

func TestEmbedUnitsFallbackOnWrongDimension(t *testing.T) {
	provider := mock.NewProvider()
	provider.MockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range out {
			out[i] = []float32{1, 2} // wrong dimension
		}
		return out, nil
	}

	p, err := New(provider, WithEmbeddingDim(8), WithRetry(fastRetry()))
	require.NoError(t, err)
	defer p.Release()

	units := []*core.TextUnit{{ID: 0, Normalized: "mismatched"}}
	client := newTestClient(t)
	p.embedUnits(context.Background(), client, units)

	require.Len(t, units[0].Embedding, 8)
	assert.Equal(t, fallbackVector("mismatched", 8), units[0].Embedding)
}

func TestFallbackVectorFeedsDeterministicClustering(t *testing.T) {
	// The degraded path must reproduce identical cluster input across runs.
	texts := []string{"plan marketing", "use social media", "allocate budget", "seo work"}
	for run := 0; run < 2; run++ {
		for i, text := range texts {
			vec := fallbackVector(text, 384)
			again := fallbackVector(text, 384)
			require.Equal(t, vec, again, "text %d not stable", i)
			var norm float64
			for _, x := range vec {
				norm += float64(x) * float64(x)
			}
			assert.False(t, math.IsNaN(norm))
		}
	}
}
