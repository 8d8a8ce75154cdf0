package mock

import (
	"context"
	"hash/fnv"
	"sync/atomic"
)

// Embedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type Embedder struct {
	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// Dim is the dimension of default vectors. Zero means 384.
	Dim int

	callCount atomic.Int64
}

// NewEmbedder creates a mock embedder with default deterministic behavior.
// Note: returns the concrete type to allow behavior injection and assertions.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedTexts generates deterministic embeddings derived from each text's hash.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount.Add(1)

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	dim := m.Dim
	if dim == 0 {
		dim = 384
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text, dim)
	}
	return vectors, nil
}

// CallCount returns the number of times EmbedTexts was called.
func (m *Embedder) CallCount() int {
	return int(m.callCount.Load())
}

// deterministicVector creates a reproducible embedding from text.
// The same text always produces the same vector.
func deterministicVector(text string, dim int) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()

	vector := make([]float32, dim)
	for i := range vector {
		// xorshift keeps successive components decorrelated
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		vector[i] = float32(state%2000)/1000.0 - 1.0
	}
	return vector
}
