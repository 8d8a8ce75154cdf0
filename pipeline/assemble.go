package pipeline

import (
	"time"

	"github.com/poiesic/conceptmap/core"
)

// assemble composes the final document from the decorated clusters. It is a
// pure function of its inputs (plus the timestamp): clusters appear in
// their given order, member texts verbatim in original source order.
func assemble(root string, clusters []*core.Cluster, units []*core.TextUnit, sourceLen int, aiProcessed bool) *core.HierarchyDocument {
	byID := make(map[int]*core.TextUnit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}

	children := make([]core.ConceptNode, 0, len(clusters))
	for _, c := range clusters {
		node := c.Label
		if c.Summary != "" {
			node = c.Summary
		}

		texts := make([]string, 0, c.Size())
		for _, id := range c.MemberIDs {
			texts = append(texts, byID[id].Raw)
		}

		entities := c.Entities
		if entities == nil {
			entities = []string{}
		}

		children = append(children, core.ConceptNode{
			Node:     node,
			Children: texts,
			Entities: entities,
		})
	}

	return &core.HierarchyDocument{
		Root:             root,
		Children:         children,
		GeneratedAt:      time.Now().UTC(),
		SourceTextLength: sourceLen,
		AIProcessed:      aiProcessed,
	}
}
