// Package pipeline orchestrates the text-to-concept-map transformation:
// segmentation, embedding acquisition, clustering, per-cluster labeling,
// summarization and entity enrichment, and final hierarchy assembly.
//
// A run moves through fixed, non-skippable stages:
//
//	Segmenting -> Embedding -> Clustering -> Labeling/Enriching -> Assembling -> Done
//
// Only segmentation can abort a run (no segmentable units). Every external
// call is routed through a per-run resilience client; failures resolve to
// deterministic fallbacks and the run always produces a complete document,
// with ai_processed reporting whether any live call succeeded.
//
// Per-cluster work after clustering is independent and fans out over an
// ants worker pool, with the resilience client's semaphore bounding actual
// outbound concurrency.
package pipeline
