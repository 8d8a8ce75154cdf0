// Package mock provides test doubles for the ai interfaces.
//
// Each mock exposes a function field for injecting custom behavior and a
// CallCount method for assertions. Defaults are deterministic so tests that
// only need "some provider" stay reproducible.
package mock
