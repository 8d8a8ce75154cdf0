package resilience

import "errors"

var (
	// ErrInvalidConcurrency is returned when a Client is constructed with a
	// non-positive concurrency limit.
	ErrInvalidConcurrency = errors.New("concurrency limit must be at least 1")
)
