package ai

import "context"

// Embedder generates vector embeddings from text for semantic clustering.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Classifier scores text against a set of candidate labels without training
// on them (zero-shot). Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// Classify scores the text against every candidate label and returns the
	// best match with its score in [0,1].
	// Returns an error if classification fails or candidates is empty.
	Classify(ctx context.Context, text string, candidates []string) (Classification, error)
}

// Summarizer produces a short-form rendition of a longer text.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize shortens text to at most maxChars characters.
	// Returns an error if summarization fails.
	Summarize(ctx context.Context, text string, maxChars int) (string, error)
}

// EntityExtractor identifies named entities mentioned in text.
// Implementations must be thread-safe for concurrent use.
type EntityExtractor interface {
	// ExtractEntities returns the entities found in text, in order of
	// first occurrence. Returns an empty slice if none are found.
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)
}

// Provider aggregates the four inference services for convenient
// initialization and lifecycle management. A provider creates and owns the
// service instances, ensuring they share configuration appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Classifier returns the zero-shot classification service.
	Classifier() Classifier

	// Summarizer returns the summarization service.
	Summarizer() Summarizer

	// EntityExtractor returns the named-entity extraction service.
	EntityExtractor() EntityExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
