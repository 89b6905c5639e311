package fixture

import (
	"errors"
	"strconv"
)

// ErrGeneratorPanic is the sentinel wrapped into a GeneratorError when a
// user-supplied generator function panics during resolution.
var ErrGeneratorPanic = errors.New("fixture: panic in value generator")

// InvalidCountError is returned by Many when the requested count is negative.
//
// It is returned before any object is generated, so a failed Many call never
// produces a partial sequence.
type InvalidCountError struct{ Count int }

// Error implements the error interface.
func (e InvalidCountError) Error() string {
	// Example: fixture: invalid object count -1
	return "fixture: invalid object count " + strconv.Itoa(e.Count)
}

// GeneratorError is returned when a generator function inside a Definition
// fails (by returning an error or by panicking). Path is the dot-joined key
// path of the failing leaf.
type GeneratorError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e GeneratorError) Error() string {
	// Example: fixture: generator at "profile.name" failed: boom
	return "fixture: generator at " + strconv.Quote(e.Path) + " failed: " + e.Err.Error()
}

// Unwrap exposes the underlying generator failure for errors.Is / errors.As.
func (e GeneratorError) Unwrap() error { return e.Err }

// UnknownTraitError is returned by TryTrait (and carried by the MustTrait
// panic) when a trait name was never registered.
type UnknownTraitError struct{ Name string }

// Error implements the error interface.
func (e UnknownTraitError) Error() string {
	// Example: fixture: unknown trait "admin"
	return "fixture: unknown trait " + strconv.Quote(e.Name)
}

// UnknownFactoryError is returned by Registry lookups for names that were
// never provided.
type UnknownFactoryError struct{ Name string }

// Error implements the error interface.
func (e UnknownFactoryError) Error() string {
	// Example: fixture: unknown factory "user"
	return "fixture: unknown factory " + strconv.Quote(e.Name)
}
