// Package segment turns raw UTF-8 text into the ordered text units the
// pipeline clusters. Splitting is deterministic and purely lexical:
// sentence-terminal punctuation first, clause boundaries for oversized
// sentences, with undersized trailing fragments merged backward.
package segment
