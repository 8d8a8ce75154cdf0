package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/conceptmap/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

// summary matches the JSON shape requested from the model.
type summary struct {
	Summary string `json:"summary"`
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
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

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize condenses text to at most maxChars characters.
// Texts already within the limit are returned unchanged without a call.
func (s *Summarizer) Summarize(ctx context.Context, text string, maxChars int) (string, error) {
	if len(text) <= maxChars {
		return text, nil
	}

	var result summary
	if err := generateJSON(ctx, s.client, s.logger,
		buildSummarizerSystemPrompt(maxChars), text, &result); err != nil {
		return "", err
	}

	out := strings.TrimSpace(result.Summary)
	s.logger.Debug("summarized text", "in", len(text), "out", len(out))
	return out, nil
}
