package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/conceptmap/ai"
)

// Classifier is a test double for ai.Classifier.
type Classifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, the first candidate wins with a fixed high score.
	ClassifyFunc func(ctx context.Context, text string, candidates []string) (ai.Classification, error)

	callCount atomic.Int64
}

// NewClassifier creates a mock classifier with default behavior.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the first candidate with score 0.9 unless overridden.
func (m *Classifier) Classify(ctx context.Context, text string, candidates []string) (ai.Classification, error) {
	m.callCount.Add(1)

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text, candidates)
	}
	if len(candidates) == 0 {
		return ai.Classification{}, nil
	}
	return ai.Classification{Label: candidates[0], Score: 0.9}, nil
}

// CallCount returns the number of times Classify was called.
func (m *Classifier) CallCount() int {
	return int(m.callCount.Load())
}

// Summarizer is a test double for ai.Summarizer.
type Summarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, truncates to maxChars.
	SummarizeFunc func(ctx context.Context, text string, maxChars int) (string, error)

	callCount atomic.Int64
}

// NewSummarizer creates a mock summarizer with default behavior.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize truncates text to maxChars unless overridden.
func (m *Summarizer) Summarize(ctx context.Context, text string, maxChars int) (string, error) {
	m.callCount.Add(1)

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text, maxChars)
	}
	if len(text) <= maxChars {
		return text, nil
	}
	return text[:maxChars], nil
}

// CallCount returns the number of times Summarize was called.
func (m *Summarizer) CallCount() int {
	return int(m.callCount.Load())
}

// EntityExtractor is a test double for ai.EntityExtractor.
type EntityExtractor struct {
	// ExtractEntitiesFunc is called by ExtractEntities if set.
	// If nil, capitalized words become MISC entities.
	ExtractEntitiesFunc func(ctx context.Context, text string) ([]ai.Entity, error)

	callCount atomic.Int64
}

// NewEntityExtractor creates a mock entity extractor with default behavior.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

// ExtractEntities treats capitalized non-leading words as entities unless overridden.
func (m *EntityExtractor) ExtractEntities(ctx context.Context, text string) ([]ai.Entity, error) {
	m.callCount.Add(1)

	if m.ExtractEntitiesFunc != nil {
		return m.ExtractEntitiesFunc(ctx, text)
	}

	seen := make(map[string]bool)
	var entities []ai.Entity
	words := strings.Fields(text)
	for i, word := range words {
		cleaned := strings.Trim(word, ".,!?;:'\"()")
		if i == 0 || cleaned == "" || seen[cleaned] {
			continue
		}
		if cleaned[0] >= 'A' && cleaned[0] <= 'Z' {
			seen[cleaned] = true
			entities = append(entities, ai.Entity{Text: cleaned, Kind: "MISC"})
		}
	}
	return entities, nil
}

// CallCount returns the number of times ExtractEntities was called.
func (m *EntityExtractor) CallCount() int {
	return int(m.callCount.Load())
}
