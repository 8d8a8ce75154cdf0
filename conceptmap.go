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


package conceptmap

import (
	"context"
	"log/slog"

	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/ai/openai"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/pipeline"
)

// Generator is the top-level entry point: it owns the AI provider and the
// pipeline, and turns raw text into hierarchy documents.
type Generator struct {
	provider ai.Provider
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*generatorOptions)

type generatorOptions struct {
	aiConfig     *ai.Config
	pipelineOpts []pipeline.Option
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(cfg *ai.Config) GeneratorOption {
	return func(o *generatorOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithPipelineOptions forwards options to the underlying pipeline.
func WithPipelineOptions(opts ...pipeline.Option) GeneratorOption {
	return func(o *generatorOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// NewGenerator creates a Generator backed by OpenAI-compatible services.
func NewGenerator(opts ...GeneratorOption) (*Generator, error) {
	// Apply options
	options := &generatorOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		return nil, err
	}

	// The pipeline must see the same embedding dimension the provider is
	// configured to produce.
	pipeOpts := append(
		[]pipeline.Option{pipeline.WithEmbeddingDim(options.aiConfig.EmbeddingDim)},
		options.pipelineOpts...,
	)
	pipe, err := pipeline.New(provider, pipeOpts...)
	if err != nil {
		provider.Close()
		return nil, err
	}

	return &Generator{
		provider: provider,
		pipeline: pipe,
		logger:   slog.Default(),
	}, nil
}

// Generate produces a hierarchy document for the given text.
func (g *Generator) Generate(ctx context.Context, text string) (*core.HierarchyDocument, error) {
	return g.pipeline.Generate(ctx, text)
}

// Close releases the pipeline's workers and the AI provider.
func (g *Generator) Close() error {
	g.pipeline.Release()

	if err := g.provider.Close(); err != nil {
		g.logger.Error("error closing AI provider", "err", err)
		return err
	}
	return nil
}
