// Package fixo provides declarative test-fixture factories for Go.
//
// The repository is organized as:
//
//   - fixture: the library package — defaults resolution, deep merging, and
//     immutable factory composition (traits, associations, sequences)
//   - cmd/fixgen: a code generator that turns a JSON shape spec into typed
//     factory constructors
//   - examples/*: runnable examples
//
// The goal is to keep fixture construction explicit and value-based: a
// factory is an immutable value, every modifier returns a new factory, and
// there is no global registry or reflection-driven container.
//
// Start with the fixture package docs and the examples in the repo.
package fixo
