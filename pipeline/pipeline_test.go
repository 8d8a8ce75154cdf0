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
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/ai/mock"
	"github.com/poiesic/conceptmap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourSentences = "Plan the marketing campaign for spring. " +
	"Review the quarterly budget with finance. " +
	"Schedule social media posts for launch week. " +
	"Draft the press release for the product."

var fourRaws = []string{
	"Plan the marketing campaign for spring",
	"Review the quarterly budget with finance",
	"Schedule social media posts for launch week",
	"Draft the press release for the product",
}

// offlineProvider returns a provider whose every service fails, as if no
// AI backend were reachable.
func offlineProvider() *mock.Provider {
	down := errors.New("connection refused")
	p := mock.NewProvider()
	p.MockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, down
	}
	p.MockClassifier().ClassifyFunc = func(ctx context.Context, text string, candidates []string) (ai.Classification, error) {
		return ai.Classification{}, down
	}
	p.MockSummarizer().SummarizeFunc = func(ctx context.Context, text string, maxChars int) (string, error) {
		return "", down
	}
	p.MockEntityExtractor().ExtractEntitiesFunc = func(ctx context.Context, text string) ([]ai.Entity, error) {
		return nil, down
	}
	return p
}

func collectTexts(doc *core.HierarchyDocument) []string {
	var texts []string
	for _, child := range doc.Children {
		texts = append(texts, child.Children...)
	}
	return texts
}

func TestNew(t *testing.T) {
	t.Run("nil provider rejected", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrProviderRequired)
	})

	t.Run("invalid concurrency rejected", func(t *testing.T) {
		_, err := New(mock.NewProvider(), WithConcurrency(0))
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
	})

	t.Run("invalid dimension rejected", func(t *testing.T) {
		_, err := New(mock.NewProvider(), WithEmbeddingDim(0))
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})
}

func TestGenerateEmptyInput(t *testing.T) {
	p, err := New(mock.NewProvider(), WithRetry(fastRetry()))
	require.NoError(t, err)
	defer p.Release()

	for _, input := range []string{"", "   \n\t  ", "... !!! ???"} {
		doc, err := p.Generate(context.Background(), input)
		assert.ErrorIs(t, err, core.ErrInsufficientInput, "input %q", input)
		assert.Nil(t, doc)
	}
}

func TestGenerateOffline(t *testing.T) {
	p, err := New(offlineProvider(), WithRetry(fastRetry()), WithCallTimeout(100*time.Millisecond))
	require.NoError(t, err)
	defer p.Release()

	doc, err := p.Generate(context.Background(), fourSentences)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.False(t, doc.AIProcessed)
	assert.Equal(t, "Mind Map", doc.Root)
	assert.Equal(t, len(fourSentences), doc.SourceTextLength)
	assert.False(t, doc.GeneratedAt.IsZero())

	// Four units produce a single cluster holding every member text
	// verbatim, in source order.
	require.Len(t, doc.Children, 1)
	child := doc.Children[0]
	assert.Equal(t, fourRaws, child.Children)
	assert.NotEmpty(t, child.Node)
	assert.NotNil(t, child.Entities)
	assert.Empty(t, child.Entities)
}

func TestGenerateLive(t *testing.T) {
	p, err := New(mock.NewProvider(),
		WithRetry(fastRetry()),
		WithCandidateLabels(DefaultCandidateLabels),
	)
	require.NoError(t, err)
	defer p.Release()

	doc, err := p.Generate(context.Background(), fourSentences)
	require.NoError(t, err)

	assert.True(t, doc.AIProcessed)
	require.NotEmpty(t, doc.Children)
	for _, child := range doc.Children {
		// The stub classifier always picks the first candidate.
		assert.Equal(t, DefaultCandidateLabels[0], child.Node)
	}
	assert.Equal(t, 4, doc.UnitCount())
}

func TestGenerateConservesMemberTexts(t *testing.T) {
	text := "Plan the marketing campaign for spring. " +
		"Review the quarterly budget with finance. " +
		"Schedule social media posts for launch week. " +
		"Draft the press release for the product. " +
		"Interview candidates for the design role. " +
		"Update the onboarding documents for new hires. " +
		"Negotiate the office lease renewal terms. " +
		"Order new laptops for the engineering team."

	p, err := New(offlineProvider(), WithRetry(fastRetry()), WithCallTimeout(100*time.Millisecond))
	require.NoError(t, err)
	defer p.Release()

	doc, err := p.Generate(context.Background(), text)
	require.NoError(t, err)

	want := []string{
		"Plan the marketing campaign for spring",
		"Review the quarterly budget with finance",
		"Schedule social media posts for launch week",
		"Draft the press release for the product",
		"Interview candidates for the design role",
		"Update the onboarding documents for new hires",
		"Negotiate the office lease renewal terms",
		"Order new laptops for the engineering team",
	}

	// Every unit appears exactly once somewhere in the hierarchy.
	got := collectTexts(doc)
	assert.Equal(t, 8, doc.UnitCount())
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestGenerateDegradedDeterminism(t *testing.T) {
	run := func() *core.HierarchyDocument {
		p, err := New(offlineProvider(), WithRetry(fastRetry()), WithCallTimeout(100*time.Millisecond))
		require.NoError(t, err)
		defer p.Release()

		doc, err := p.Generate(context.Background(), fourSentences)
		require.NoError(t, err)
		return doc
	}

	first := run()
	second := run()

	require.Len(t, second.Children, len(first.Children))
	for i := range first.Children {
		assert.Equal(t, first.Children[i].Node, second.Children[i].Node)
		assert.Equal(t, first.Children[i].Children, second.Children[i].Children)
	}
}

func TestGenerateCustomRootTitle(t *testing.T) {
	p, err := New(mock.NewProvider(), WithRetry(fastRetry()), WithRootTitle("Q3 Planning"))
	require.NoError(t, err)
	defer p.Release()

	doc, err := p.Generate(context.Background(), fourSentences)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Planning", doc.Root)
}

func TestGenerateCompletesWithinDeadline(t *testing.T) {
	hang := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	provider := mock.NewProvider()
	provider.MockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, hang(ctx)
	}
	provider.MockClassifier().ClassifyFunc = func(ctx context.Context, text string, candidates []string) (ai.Classification, error) {
		return ai.Classification{}, hang(ctx)
	}
	provider.MockSummarizer().SummarizeFunc = func(ctx context.Context, text string, maxChars int) (string, error) {
		return "", hang(ctx)
	}
	provider.MockEntityExtractor().ExtractEntitiesFunc = func(ctx context.Context, text string) ([]ai.Entity, error) {
		return nil, hang(ctx)
	}

	p, err := New(provider,
		WithRetry(fastRetry()),
		WithCallTimeout(50*time.Millisecond),
		WithDeadline(500*time.Millisecond),
	)
	require.NoError(t, err)
	defer p.Release()

	start := time.Now()
	doc, err := p.Generate(context.Background(), fourSentences)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, doc.AIProcessed)
	require.Len(t, doc.Children, 1)
	assert.Equal(t, fourRaws, doc.Children[0].Children)
}
