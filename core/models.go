package core

import "time"

// TextUnit is one segmented sentence or phrase from the input text.
// Units are created by the segmenter and enriched in place by later
// pipeline stages. The ID is the unit's position within the source text
// and ordering by ID is significant everywhere.
type TextUnit struct {
	ID         int
	Raw        string    // original substring, emitted verbatim in the document
	Normalized string    // cleaned text used for embedding and keyword analysis
	Embedding  []float32 // populated by the embedding stage
	ClusterID  int       // populated by the cluster engine, UnassignedCluster until then
}

// UnassignedCluster marks a unit that has not been through clustering yet.
const UnassignedCluster = -1

// Cluster is a non-empty group of text units sharing a labeled concept.
type Cluster struct {
	ID         int
	MemberIDs  []int     // unit IDs in ascending order, never empty
	Centroid   []float32 // mean embedding of the members
	Label      string    // never empty once labeling has run
	Confidence float64   // classification score in [0,1], 0 for fallback labels
	Summary    string    // shortened label when the original exceeded the display limit
	Entities   []string  // distinct entity strings in first-occurrence order
}

// Size returns the number of member units.
func (c *Cluster) Size() int {
	return len(c.MemberIDs)
}

// ConceptNode is one labeled branch of the emitted hierarchy.
type ConceptNode struct {
	Node     string   `json:"node"`
	Children []string `json:"children"`
	Entities []string `json:"entities"`
}

// HierarchyDocument is the final output of a pipeline run. It is immutable
// once produced and never persisted by this module.
type HierarchyDocument struct {
	Root             string        `json:"root"`
	Children         []ConceptNode `json:"children"`
	GeneratedAt      time.Time     `json:"generated_at"`
	SourceTextLength int           `json:"source_text_length"`
	AIProcessed      bool          `json:"ai_processed"`
}

// UnitCount returns the total number of member texts across all branches.
func (d *HierarchyDocument) UnitCount() int {
	total := 0
	for _, child := range d.Children {
		total += len(child.Children)
	}
	return total
}
