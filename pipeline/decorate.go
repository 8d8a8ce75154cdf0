package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/resilience"
)

// decorateCluster runs the per-cluster enrichment stages: labeling,
// summarization of overlong labels, and entity extraction. Each stage
// absorbs service degradation through its fallback; nothing here fails.
func (p *Pipeline) decorateCluster(ctx context.Context, client *resilience.Client, c *core.Cluster, units []*core.TextUnit) {
	rawTexts := make([]string, 0, c.Size())
	normalized := make([]string, 0, c.Size())
	for _, id := range c.MemberIDs {
		rawTexts = append(rawTexts, units[id].Raw)
		normalized = append(normalized, units[id].Normalized)
	}

	p.labelCluster(ctx, client, c, normalized)
	p.summarizeLabel(ctx, client, c)
	p.enrichEntities(ctx, client, c, rawTexts)
}

// labelCluster assigns a non-empty semantic label. The classifier scores the
// cluster text against the configured vocabulary, or against the cluster's
// own top keywords when no vocabulary is configured. Below-threshold scores
// and degraded calls fall back to the most frequent content word with
// confidence zero.
func (p *Pipeline) labelCluster(ctx context.Context, client *resilience.Client, c *core.Cluster, memberTexts []string) {
	candidates := p.candidateLabels
	if len(candidates) == 0 {
		candidates = topKeywords(memberTexts, 5)
	}

	clusterText := strings.Join(memberTexts, ". ")

	if len(candidates) > 0 {
		result := resilience.Do(ctx, client, "classification",
			func(ctx context.Context) (ai.Classification, error) {
				return p.provider.Classifier().Classify(ctx, clusterText, candidates)
			},
			func() ai.Classification { return ai.Classification{} },
		)
		if result.OK && result.Value.Label != "" && result.Value.Score >= p.confidenceThreshold {
			c.Label = result.Value.Label
			c.Confidence = result.Value.Score
			return
		}
	}

	c.Confidence = 0
	if keywords := topKeywords(memberTexts, 1); len(keywords) > 0 {
		c.Label = keywords[0]
		return
	}
	// No content words at all; a positional name is the last resort.
	c.Label = fmt.Sprintf("Topic %d", c.ID+1)
}

// summarizeLabel shortens labels exceeding the display limit. The output
// never exceeds the limit: live summaries that run long are truncated too.
func (p *Pipeline) summarizeLabel(ctx context.Context, client *resilience.Client, c *core.Cluster) {
	if len(c.Label) <= p.maxNodeChars {
		return
	}

	label := c.Label
	result := resilience.Do(ctx, client, "summarization",
		func(ctx context.Context) (string, error) {
			return p.provider.Summarizer().Summarize(ctx, label, p.maxNodeChars)
		},
		func() string { return truncateWithEllipsis(label, p.maxNodeChars) },
	)

	short := result.Value
	if short == "" || len(short) > p.maxNodeChars {
		short = truncateWithEllipsis(label, p.maxNodeChars)
	}
	c.Summary = short
}

// enrichEntities collects distinct entity strings in first-occurrence
// order. Degradation leaves the cluster with an empty entity list, which is
// non-fatal.
func (p *Pipeline) enrichEntities(ctx context.Context, client *resilience.Client, c *core.Cluster, rawTexts []string) {
	clusterText := strings.Join(rawTexts, ". ")

	result := resilience.Do(ctx, client, "ner",
		func(ctx context.Context) ([]ai.Entity, error) {
			return p.provider.EntityExtractor().ExtractEntities(ctx, clusterText)
		},
		func() []ai.Entity { return nil },
	)

	seen := make(map[string]bool, len(result.Value))
	entities := make([]string, 0, len(result.Value))
	for _, ent := range result.Value {
		name := strings.TrimSpace(ent.Text)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		entities = append(entities, name)
	}
	c.Entities = entities
}

// truncateWithEllipsis cuts s to at most max bytes, marking the cut with
// an ellipsis when room allows.
func truncateWithEllipsis(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	cut := max - 3
	// Avoid splitting a multi-byte rune.
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + "..."
}
