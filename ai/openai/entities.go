package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/conceptmap/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// EntityExtractor implements ai.EntityExtractor using OpenAI-compatible chat APIs.
type EntityExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// entity and entityList match the JSON shape requested from the model.
type entity struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type entityList struct {
	Entities []entity `json:"entities"`
}

// newEntityExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEntityExtractor(config *ai.Config) (*EntityExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.InferenceHost),
		openai.WithToken("none"),
		openai.WithModel(config.InferenceModel),
	)
	if err != nil {
		return nil, err
	}

	return &EntityExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-ner"),
	}, nil
}

// NewEntityExtractor creates a new entity extractor using the provided configuration.
//
// Returns ai.EntityExtractor interface to enforce abstraction.
func NewEntityExtractor(config *ai.Config) (ai.EntityExtractor, error) {
	return newEntityExtractor(config)
}

// ExtractEntities returns the named entities found in text, deduplicated and
// in order of first occurrence.
func (e *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]ai.Entity, error) {
	var result entityList
	if err := generateJSON(ctx, e.client, e.logger, nerSystemPrompt, text, &result); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(result.Entities))
	entities := make([]ai.Entity, 0, len(result.Entities))
	for _, ent := range result.Entities {
		name := strings.TrimSpace(ent.Text)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		entities = append(entities, ai.Entity{Text: name, Kind: strings.TrimSpace(ent.Kind)})
	}

	e.logger.Debug("extracted entities", "total", len(result.Entities), "distinct", len(entities))
	return entities, nil
}
