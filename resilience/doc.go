// Package resilience wraps outbound inference calls with the degradation
// policy shared by every pipeline stage: a bounded concurrency limiter,
// a per-call timeout, exponential backoff retries, and a registered
// fallback once retries are exhausted.
//
// Calls never fail: Do always returns a CallResult carrying either the live
// service value or the fallback value, plus which of the two it was. Only
// construction (invalid configuration) returns an error. The client also
// keeps live/degraded counters, which is how a pipeline run decides its
// ai_processed flag.
package resilience
