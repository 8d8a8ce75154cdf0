package openai

import "errors"

var (
	// errNoChoices is returned when the chat model produces no completion choices.
	errNoChoices = errors.New("model returned no choices")

	// ErrNoCandidates is returned when Classify is called without candidate labels.
	ErrNoCandidates = errors.New("classification requires at least one candidate label")
)
