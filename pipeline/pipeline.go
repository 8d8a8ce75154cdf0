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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/cluster"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/resilience"
	"github.com/poiesic/conceptmap/segment"
)

// DefaultCandidateLabels is the general-purpose topic vocabulary used by
// callers that have no domain-specific labels of their own.
var DefaultCandidateLabels = []string{
	"Business", "Technology", "Marketing", "Finance", "Education",
	"Health", "Entertainment", "Travel", "Food", "Sports",
	"Science", "Art", "Music", "Politics", "Environment",
}

// Pipeline turns raw text into a hierarchical concept map. A Pipeline is
// safe for sequential reuse; each Generate call is an independent,
// stateless run with its own resilient client and degradation accounting.
type Pipeline struct {
	provider  ai.Provider
	segmenter *segment.Segmenter
	pool      *ants.Pool
	logger    *slog.Logger

	candidateLabels     []string
	concurrency         int
	callTimeout         time.Duration
	deadline            time.Duration
	seed                int64
	embeddingDim        int
	maxClusters         int
	rootTitle           string
	confidenceThreshold float64
	maxNodeChars        int
	retry               resilience.RetryConfig
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithCandidateLabels sets the label vocabulary considered by
// classification. With no vocabulary, each cluster derives candidates from
// its own top keywords.
func WithCandidateLabels(labels []string) Option {
	return func(p *Pipeline) error {
		p.candidateLabels = labels
		return nil
	}
}

// WithConcurrency bounds simultaneous outbound AI calls within a run.
// Default is 4.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			return ErrInvalidConcurrency
		}
		p.concurrency = n
		return nil
	}
}

// WithCallTimeout bounds each individual service call. Default is 10s.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.callTimeout = d
		return nil
	}
}

// WithDeadline bounds a whole Generate run. When the deadline passes,
// outstanding calls resolve to their fallbacks and the run still completes
// with a degraded document. Zero means no run deadline beyond the caller's
// context. Default is 2 minutes.
func WithDeadline(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.deadline = d
		return nil
	}
}

// WithSeed fixes the clustering seed. Default is 42.
func WithSeed(seed int64) Option {
	return func(p *Pipeline) error {
		p.seed = seed
		return nil
	}
}

// WithEmbeddingDim sets the vector dimension every unit must end the
// embedding stage with. Default is 384.
func WithEmbeddingDim(dim int) Option {
	return func(p *Pipeline) error {
		if dim < 1 {
			return ErrInvalidDimension
		}
		p.embeddingDim = dim
		return nil
	}
}

// WithMaxClusters caps the cluster count. Default is 10.
func WithMaxClusters(max int) Option {
	return func(p *Pipeline) error {
		p.maxClusters = max
		return nil
	}
}

// WithRootTitle sets the document root. Default is "Mind Map".
func WithRootTitle(title string) Option {
	return func(p *Pipeline) error {
		if title != "" {
			p.rootTitle = title
		}
		return nil
	}
}

// WithConfidenceThreshold sets the minimum classification score for a live
// label to be accepted. Default is 0.3.
func WithConfidenceThreshold(threshold float64) Option {
	return func(p *Pipeline) error {
		p.confidenceThreshold = threshold
		return nil
	}
}

// WithMaxNodeChars sets the display length limit that triggers label
// summarization. Default is 50.
func WithMaxNodeChars(max int) Option {
	return func(p *Pipeline) error {
		if max > 0 {
			p.maxNodeChars = max
		}
		return nil
	}
}

// WithRetry sets the retry policy for outbound calls.
func WithRetry(rc resilience.RetryConfig) Option {
	return func(p *Pipeline) error {
		p.retry = rc
		return nil
	}
}

// WithSegmenter replaces the default segmenter.
func WithSegmenter(s *segment.Segmenter) Option {
	return func(p *Pipeline) error {
		if s != nil {
			p.segmenter = s
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// New creates a concept map pipeline backed by the given AI provider.
func New(provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	p := &Pipeline{
		provider:            provider,
		segmenter:           segment.New(),
		logger:              slog.Default(),
		concurrency:         4,
		callTimeout:         10 * time.Second,
		deadline:            2 * time.Minute,
		seed:                42,
		embeddingDim:        384,
		maxClusters:         10,
		rootTitle:           "Mind Map",
		confidenceThreshold: 0.3,
		maxNodeChars:        50,
		retry:               resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "pipeline")

	pool, err := ants.NewPool(p.concurrency)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// Generate runs the full pipeline over text and produces the hierarchy
// document. The only error callers can observe is a fatal one: text that
// yields no segmentable units. Every service failure degrades silently
// into fallback values, reflected in the document's ai_processed flag and
// per-cluster confidences.
func (p *Pipeline) Generate(ctx context.Context, text string) (*core.HierarchyDocument, error) {
	if p.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.deadline)
		defer cancel()
	}

	client, err := resilience.NewClient(p.concurrency,
		resilience.WithCallTimeout(p.callTimeout),
		resilience.WithRetry(p.retry),
		resilience.WithLogger(p.logger),
	)
	if err != nil {
		return nil, err
	}

	units, err := p.segmenter.Segment(text)
	if err != nil {
		return nil, err
	}
	p.logger.Info("segmented input", "units", len(units))

	p.embedUnits(ctx, client, units)

	engine := cluster.New(
		cluster.WithMaxClusters(p.maxClusters),
		cluster.WithSeed(p.seed),
	)
	clusters, err := engine.Partition(units)
	if err != nil {
		// Units are guaranteed embedded at the right dimension, so this
		// indicates a bug rather than bad input.
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	p.logger.Info("clustered units", "clusters", len(clusters))

	p.decorateClusters(ctx, client, clusters, units)

	stats := client.Stats()
	p.logger.Info("run complete",
		"live_calls", stats.Live,
		"degraded_calls", stats.Degraded,
		"ai_processed", client.AIProcessed())

	return assemble(p.rootTitle, clusters, units, len(text), client.AIProcessed()), nil
}

// decorateClusters labels, summarizes and enriches every cluster, fanning
// the independent per-cluster work out over the worker pool.
func (p *Pipeline) decorateClusters(ctx context.Context, client *resilience.Client, clusters []*core.Cluster, units []*core.TextUnit) {
	var wg sync.WaitGroup
	for _, c := range clusters {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			p.decorateCluster(ctx, client, c, units)
		}
		if err := p.pool.Submit(task); err != nil {
			// Pool rejected the task (e.g. released); run inline so the
			// cluster is still decorated.
			p.logger.Warn("worker pool submit failed, running inline", "err", err)
			task()
		}
	}
	wg.Wait()
}

// Release releases the worker pool. The pipeline should not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
