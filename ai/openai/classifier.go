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


package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/conceptmap/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
// The chat model plays the role of a zero-shot classifier: it receives the
// candidate labels in the prompt and answers with the best match and a score.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// classification matches the JSON shape requested from the model.
type classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
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

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify scores text against the candidate labels and returns the best match.
func (c *Classifier) Classify(ctx context.Context, text string, candidates []string) (ai.Classification, error) {
	if len(candidates) == 0 {
		return ai.Classification{}, ErrNoCandidates
	}

	text = scrubString(text)

	var result classification
	if err := generateJSON(ctx, c.client, c.logger, classifierSystemPrompt,
		buildClassifierPrompt(text, candidates), &result); err != nil {
		return ai.Classification{}, err
	}

	// Models occasionally paraphrase a candidate; snap back to the exact one.
	result.Label = snapToCandidate(result.Label, candidates)
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 1 {
		result.Score = 1
	}

	c.logger.Debug("classified text", "label", result.Label, "score", result.Score)
	return ai.Classification{Label: result.Label, Score: result.Score}, nil
}

// snapToCandidate maps a model answer onto the closest candidate label.
// Falls back to the first candidate if nothing matches.
func snapToCandidate(label string, candidates []string) string {
	lowered := strings.ToLower(strings.TrimSpace(label))
	for _, c := range candidates {
		if strings.ToLower(c) == lowered {
			return c
		}
	}
	for _, c := range candidates {
		if strings.Contains(lowered, strings.ToLower(c)) {
			return c
		}
	}
	return candidates[0]
}
