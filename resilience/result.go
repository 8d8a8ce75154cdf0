package resilience

// CallResult is the uniform return shape of every resilient call.
// Expected degradation travels as data, never as an error: a call either
// succeeded live (OK) or resolved to its registered fallback (Degraded).
type CallResult[T any] struct {
	OK       bool
	Degraded bool
	Value    T
}

// Live wraps a value returned by a successful service call.
func Live[T any](value T) CallResult[T] {
	return CallResult[T]{OK: true, Value: value}
}

// Fallback wraps a value produced by a fallback strategy after the live
// call was exhausted.
func Fallback[T any](value T) CallResult[T] {
	return CallResult[T]{Degraded: true, Value: value}
}
