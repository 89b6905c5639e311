package fixture

import (
	"fmt"
	"reflect"
	"sort"
	"time"
)

// Definition is a declarative defaults tree mirroring the target object's
// shape. Each value is one of:
//   - a literal, used as-is
//   - a zero-argument generator function, invoked once per Resolve
//   - a nested Definition (or plain map[string]any), resolved recursively
//
// Slices and time.Time values are opaque leaves: they are never descended
// into, and overrides replace them wholly.
type Definition map[string]any

// Override is a deep-partial of the target shape: absent keys keep the base
// value, present keys replace (or, for nested maps, recursively merge into)
// the base. Use Absent as a value to explicitly mean "no override here".
type Override map[string]any

// Object is a concrete generated object: a Definition with every generator
// invoked and every override applied.
type Object map[string]any

// Generator is the canonical generator-leaf type. Plain func() any,
// func() (any, error), and any other zero-argument producer func (for
// example func() int returned by Sequence) are accepted equally.
type Generator func() any

// absent is the private type behind the Absent sentinel.
type absent struct{}

func (absent) String() string { return "fixture.Absent" }

// Absent marks the deliberate absence of an override value. Merging Absent
// keeps the base value, and entries whose final merged value is Absent are
// dropped from the result. Explicit nil is not Absent: nil is a real
// override and is preserved in the output.
var Absent any = absent{}

func isAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// asMap reports whether v is a mergeable key/value tree and returns its map
// form. Slices, time.Time, funcs, primitives, and nil are not mergeable.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Definition:
		return m, true
	case Override:
		return m, true
	case Object:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// Resolve turns a Definition into a concrete Object.
//
// It walks the definition depth-first, visiting keys in sorted order so that
// generator invocation order is deterministic. Every generator function is
// invoked exactly once per call; its return value is taken as-is, with no
// further recursion even when it is itself map-shaped. Non-function, non-map
// values are carried over verbatim.
//
// The first generator failure (error or recovered panic) aborts the whole
// call: no partial object is returned.
func Resolve(def Definition) (Object, error) {
	return resolveMap(def, "")
}

func resolveMap(m map[string]any, path string) (Object, error) {
	out := make(Object, len(m))
	for _, k := range sortedKeys(m) {
		v, err := resolveValue(m[k], childPath(path, k))
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func resolveValue(v any, path string) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Generator:
		return callGenerator(path, x)
	case func() any:
		return callGenerator(path, x)
	case func() (any, error):
		return callFallible(path, x)
	case func() int:
		return callGenerator(path, func() any { return x() })
	case func() string:
		return callGenerator(path, func() any { return x() })
	case func() time.Time:
		return callGenerator(path, func() any { return x() })
	case Definition:
		return resolveMap(x, path)
	case Override:
		return resolveMap(x, path)
	case Object:
		return resolveMap(x, path)
	case map[string]any:
		return resolveMap(x, path)
	default:
		if fn, ok := adaptProducer(v); ok {
			return callFallible(path, fn)
		}
		return v, nil
	}
}

// callGenerator invokes fn and defensively converts panics into errors, so a
// misbehaving generator fails the Resolve call instead of unwinding through
// the caller's test.
func callGenerator(path string, fn func() any) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = GeneratorError{Path: path, Err: fmt.Errorf("%w: %v", ErrGeneratorPanic, rec)}
		}
	}()
	return fn(), nil
}

func callFallible(path string, fn func() (any, error)) (out any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = GeneratorError{Path: path, Err: fmt.Errorf("%w: %v", ErrGeneratorPanic, rec)}
		}
	}()
	v, ferr := fn()
	if ferr != nil {
		return nil, GeneratorError{Path: path, Err: ferr}
	}
	return v, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// adaptProducer recognizes generator leaves beyond the concrete func types
// handled in resolveValue: any non-variadic func taking no arguments and
// returning one value (or a value plus an error). Funcs that take arguments
// are opaque leaf values, not generators.
func adaptProducer(v any) (func() (any, error), bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, false
	}
	t := rv.Type()
	if t.NumIn() != 0 || t.IsVariadic() {
		return nil, false
	}
	switch t.NumOut() {
	case 1:
		return func() (any, error) {
			return rv.Call(nil)[0].Interface(), nil
		}, true
	case 2:
		if t.Out(1) != errType {
			return nil, false
		}
		return func() (any, error) {
			res := rv.Call(nil)
			if e := res[1].Interface(); e != nil {
				return nil, e.(error)
			}
			return res[0].Interface(), nil
		}, true
	default:
		return nil, false
	}
}

// Merge deep-merges override onto base and returns the merged value.
//
// Policy, per position:
//   - Absent keeps base unchanged (absence-of-override).
//   - A non-mergeable override (primitive, nil, slice, time.Time, func)
//     replaces base outright. Explicit nil, false, 0, and "" are deliberate
//     overrides, not absence.
//   - A mergeable override is merged key-by-key over base: keys missing from
//     the override carry the base value, keys present recurse when both
//     sides are mergeable, and override wins otherwise. The result's key set
//     is the union of both sides.
//   - Entries whose final value is Absent are dropped from the result;
//     explicit nil entries are preserved.
//
// Slices and time.Time values are atomic: they are replaced wholly, never
// merged element-by-element. The returned top-level map is always freshly
// allocated; subtrees taken unchanged from base are shared, not copied.
func Merge(base, override any) any {
	if isAbsent(override) {
		return base
	}
	ov, ok := asMap(override)
	if !ok {
		return override
	}
	// A non-mergeable base contributes no keys of its own.
	bm, _ := asMap(base)

	out := make(Object, len(bm)+len(ov))
	for k, bv := range bm {
		if isAbsent(bv) {
			continue
		}
		out[k] = bv
	}
	for k, v := range ov {
		if isAbsent(v) {
			continue
		}
		if _, mergeable := asMap(v); mergeable {
			out[k] = Merge(out[k], v)
			continue
		}
		out[k] = v
	}
	return out
}
