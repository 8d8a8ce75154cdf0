// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package resilience

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Client wraps every outbound inference call with a shared concurrency
// limit, a per-call timeout, exponential backoff retries and a terminal
// fallback. One Client is shared by all stages of a pipeline run; its
// semaphore is the run's only shared mutable resource.
type Client struct {
	sem         *semaphore.Weighted
	retry       RetryConfig
	callTimeout time.Duration
	logger      *slog.Logger

	live     atomic.Int64
	degraded atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithRetry sets the retry policy.
func WithRetry(rc RetryConfig) Option {
	return func(c *Client) {
		c.retry = rc
	}
}

// WithCallTimeout bounds each individual service attempt.
// Default is 10 seconds.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.callTimeout = d
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates a resilient call wrapper allowing at most concurrency
// simultaneous outbound calls. A non-positive concurrency is a
// configuration error and fails construction.
func NewClient(concurrency int, opts ...Option) (*Client, error) {
	if concurrency < 1 {
		return nil, ErrInvalidConcurrency
	}

	c := &Client{
		sem:         semaphore.NewWeighted(int64(concurrency)),
		retry:       DefaultRetryConfig(),
		callTimeout: 10 * time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "resilience")
	return c, nil
}

// Stats is a snapshot of a client's call accounting.
type Stats struct {
	Live     int64 // calls that succeeded against the live service
	Degraded int64 // calls that resolved to their fallback
}

// Stats returns the current call accounting.
func (c *Client) Stats() Stats {
	return Stats{Live: c.live.Load(), Degraded: c.degraded.Load()}
}

// AIProcessed reports whether at least one call in this client's lifetime
// succeeded without falling back.
func (c *Client) AIProcessed() bool {
	return c.live.Load() > 0
}

// Do runs op through the client: one semaphore slot, per-attempt timeout,
// backoff retries, then the fallback. It never returns an error; the
// CallResult records whether the value is live or degraded. The kind tag is
// used only for logging.
//
// Do is a package function rather than a method so the result can be
// generic over the operation's value type.
func Do[T any](ctx context.Context, c *Client, kind string, op func(context.Context) (T, error), fallback func() T) CallResult[T] {
	// The run deadline may already have passed; skip straight to the fallback.
	if err := c.sem.Acquire(ctx, 1); err != nil {
		c.logger.Debug("limiter acquire aborted", "kind", kind, "err", err)
		return degrade(c, fallback)
	}
	defer c.sem.Release(1)

	delay := c.retry.BaseDelay
	var lastErr error

	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		value, err := op(callCtx)
		cancel()

		if err == nil {
			c.live.Add(1)
			return Live(value)
		}
		lastErr = err

		// A dead run context means no attempt can succeed anymore.
		if ctx.Err() != nil {
			break
		}

		if attempt < c.retry.MaxAttempts-1 {
			c.logger.Debug("service call failed, backing off",
				"kind", kind, "attempt", attempt+1, "delay", delay, "err", err)
			select {
			case <-ctx.Done():
				return degrade(c, fallback)
			case <-time.After(delay):
				delay = c.retry.next(delay)
			}
		}
	}

	c.logger.Warn("service call exhausted, using fallback", "kind", kind, "err", lastErr)
	return degrade(c, fallback)
}

// degrade records a degraded call and wraps the fallback value.
func degrade[T any](c *Client, fallback func() T) CallResult[T] {
	c.degraded.Add(1)
	return Fallback(fallback())
}
