// Package cluster partitions embedded text units into non-empty concept
// clusters. The engine is deliberately free of randomness at run time so
// that identical embeddings and an identical seed always reproduce the
// same partition, even when the embeddings themselves came from a
// degraded fallback path.
package cluster
