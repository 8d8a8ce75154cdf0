package ai

// Classification is the outcome of scoring text against candidate labels.
type Classification struct {
	// Label is the best-scoring candidate.
	Label string

	// Score is the confidence for Label in [0,1].
	Score float64
}

// Entity is a named entity identified in text.
type Entity struct {
	// Text is the entity as it appears in the source.
	Text string

	// Kind categorizes the entity (e.g. "PER", "ORG", "LOC").
	Kind string
}
