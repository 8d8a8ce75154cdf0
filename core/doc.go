// Package core defines the domain records shared by the concept map
// pipeline: segmented text units, concept clusters, and the emitted
// hierarchy document. All records are run-scoped; nothing in this
// package persists across pipeline runs.
package core
