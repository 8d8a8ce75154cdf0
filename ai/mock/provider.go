package mock

import "github.com/poiesic/conceptmap/ai"

// Provider is a test double for ai.Provider aggregating the mock services.
type Provider struct {
	embedder   *Embedder
	classifier *Classifier
	summarizer *Summarizer
	extractor  *EntityExtractor
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a provider wired with fresh mock services.
func NewProvider() *Provider {
	return &Provider{
		embedder:   NewEmbedder(),
		classifier: NewClassifier(),
		summarizer: NewSummarizer(),
		extractor:  NewEntityExtractor(),
	}
}

// Embedder returns the embedding service.
func (p *Provider) Embedder() ai.Embedder { return p.embedder }

// Classifier returns the classification service.
func (p *Provider) Classifier() ai.Classifier { return p.classifier }

// Summarizer returns the summarization service.
func (p *Provider) Summarizer() ai.Summarizer { return p.summarizer }

// EntityExtractor returns the entity extraction service.
func (p *Provider) EntityExtractor() ai.EntityExtractor { return p.extractor }

// Close is a no-op for mocks.
func (p *Provider) Close() error { return nil }

// MockEmbedder returns the concrete embedder for behavior injection.
func (p *Provider) MockEmbedder() *Embedder { return p.embedder }

// MockClassifier returns the concrete classifier for behavior injection.
func (p *Provider) MockClassifier() *Classifier { return p.classifier }

// MockSummarizer returns the concrete summarizer for behavior injection.
func (p *Provider) MockSummarizer() *Summarizer { return p.summarizer }

// MockEntityExtractor returns the concrete extractor for behavior injection.
func (p *Provider) MockEntityExtractor() *EntityExtractor { return p.extractor }
