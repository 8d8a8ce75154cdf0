package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetry keeps backoff delays negligible in tests.
func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestNewClient(t *testing.T) {
	t.Run("valid concurrency", func(t *testing.T) {
		client, err := NewClient(4)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("zero concurrency rejected", func(t *testing.T) {
		_, err := NewClient(0)
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
	})

	t.Run("negative concurrency rejected", func(t *testing.T) {
		_, err := NewClient(-1)
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
	})
}

func TestDoSuccess(t *testing.T) {
	client, err := NewClient(2, WithRetry(fastRetry()))
	require.NoError(t, err)

	result := Do(context.Background(), client, "embedding",
		func(ctx context.Context) (int, error) { return 42, nil },
		func() int { return -1 },
	)

	assert.True(t, result.OK)
	assert.False(t, result.Degraded)
	assert.Equal(t, 42, result.Value)
	assert.Equal(t, int64(1), client.Stats().Live)
	assert.Equal(t, int64(0), client.Stats().Degraded)
	assert.True(t, client.AIProcessed())
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	client, err := NewClient(1, WithRetry(fastRetry()))
	require.NoError(t, err)

	var attempts atomic.Int64
	result := Do(context.Background(), client, "classification",
		func(ctx context.Context) (string, error) {
			if attempts.Add(1) < 3 {
				return "", errors.New("server error")
			}
			return "live", nil
		},
		func() string { return "fallback" },
	)

	assert.True(t, result.OK)
	assert.Equal(t, "live", result.Value)
	assert.Equal(t, int64(3), attempts.Load())
}

func TestDoExhaustionFallsBack(t *testing.T) {
	client, err := NewClient(1, WithRetry(fastRetry()))
	require.NoError(t, err)

	var attempts atomic.Int64
	result := Do(context.Background(), client, "ner",
		func(ctx context.Context) ([]string, error) {
			attempts.Add(1)
			return nil, errors.New("rate limited")
		},
		func() []string { return []string{} },
	)

	assert.False(t, result.OK)
	assert.True(t, result.Degraded)
	assert.Empty(t, result.Value)
	assert.Equal(t, int64(3), attempts.Load())
	assert.Equal(t, int64(1), client.Stats().Degraded)
	assert.False(t, client.AIProcessed())
}

func TestDoExpiredContextSkipsToFallback(t *testing.T) {
	client, err := NewClient(1, WithRetry(fastRetry()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var attempts atomic.Int64
	result := Do(ctx, client, "summarization",
		func(ctx context.Context) (string, error) {
			attempts.Add(1)
			return "", ctx.Err()
		},
		func() string { return "truncated" },
	)

	assert.True(t, result.Degraded)
	assert.Equal(t, "truncated", result.Value)
	// At most one attempt: either the acquire aborts or the first call
	// observes the dead context and no retry follows.
	assert.LessOrEqual(t, attempts.Load(), int64(1))
}

func TestDoPerCallTimeout(t *testing.T) {
	client, err := NewClient(1,
		WithRetry(RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}),
		WithCallTimeout(10*time.Millisecond),
	)
	require.NoError(t, err)

	start := time.Now()
	result := Do(context.Background(), client, "embedding",
		func(ctx context.Context) (int, error) {
			<-ctx.Done() // simulate a hung service bounded by the call timeout
			return 0, ctx.Err()
		},
		func() int { return 7 },
	)

	assert.True(t, result.Degraded)
	assert.Equal(t, 7, result.Value)
	assert.Less(t, time.Since(start), time.Second)
}

func TestDoConcurrencyLimit(t *testing.T) {
	client, err := NewClient(2, WithRetry(fastRetry()))
	require.NoError(t, err)

	var inFlight, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Do(context.Background(), client, "embedding",
				func(ctx context.Context) (int, error) {
					now := inFlight.Add(1)
					for {
						p := peak.Load()
						if now <= p || peak.CompareAndSwap(p, now) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					inFlight.Add(-1)
					return 0, nil
				},
				func() int { return 0 },
			)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(2))
	assert.Equal(t, int64(8), client.Stats().Live)
}

func TestRunDeadlineForcesDegradation(t *testing.T) {
	// Every call hangs; the run deadline must still let all of them resolve
	// to fallbacks in bounded time.
	client, err := NewClient(4, WithCallTimeout(time.Minute), WithRetry(fastRetry()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := Do(ctx, client, "classification",
				func(ctx context.Context) (string, error) {
					<-ctx.Done()
					return "", ctx.Err()
				},
				func() string { return "degraded" },
			)
			assert.True(t, result.Degraded)
			assert.Equal(t, "degraded", result.Value)
		}()
	}
	wg.Wait()

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, client.AIProcessed())
}
