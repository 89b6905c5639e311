// Package fixture builds structured test objects from declarative
// default-value definitions.
//
// A Definition mirrors the shape of the object under test: each position
// holds a literal value, a zero-argument generator function, or a nested
// definition. A Factory resolves the definition, deep-merges caller
// overrides on top, and returns a concrete Object. Named variants (traits),
// cross-object derivations (associations), and incrementing sequences are
// layered on top of the same two primitives.
//
// Design goals:
//   - Value semantics: a Factory is immutable; every modifier returns a new
//     Factory, so factories are safe to share between tests and packages.
//   - Explicit data: definitions are plain maps and funcs, no struct tags,
//     no reflection-driven registration.
//   - Safe defaults: generator panics and errors fail the whole generation,
//     never a half-built object.
//   - Test-friendly: small API surface, deterministic resolution order.
package fixture
