package pipeline

import "errors"

var (
	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrInvalidConcurrency is returned for a non-positive concurrency limit.
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

	// ErrInvalidDimension is returned for a non-positive embedding dimension.
	ErrInvalidDimension = errors.New("embedding dimension must be positive")
)
