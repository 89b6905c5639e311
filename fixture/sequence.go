package fixture

import (
	"strconv"
	"sync/atomic"
)

// Sequence returns a generator producing 0, 1, 2, ... on successive calls.
//
// Each call to Sequence creates an independent counter; two sequences never
// share state. The counter is advanced atomically, so a single sequence may
// also be used from concurrently running tests.
func Sequence() func() int {
	var n atomic.Int64
	return func() int {
		return int(n.Add(1) - 1)
	}
}

// SequenceString returns a generator producing prefix+"0", prefix+"1", ...
// on successive calls, backed by its own counter.
func SequenceString(prefix string) func() string {
	next := Sequence()
	return func() string {
		return prefix + strconv.Itoa(next())
	}
}

// SequenceOf returns a generator producing fn(0), fn(1), fn(2), ... on
// successive calls, backed by its own counter.
func SequenceOf[T any](fn func(i int) T) func() T {
	next := Sequence()
	return func() T {
		return fn(next())
	}
}
