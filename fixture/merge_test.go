package fixture_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sghaida/fixo/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Resolve – shape and leaf handling

func TestResolve_ShapePreservation(t *testing.T) {
	t.Parallel()

	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	def := fixture.Definition{
		"id":    "user-id",
		"count": 3,
		"tags":  []any{"a", "b"},
		"since": when,
		"none":  nil,
		"profile": fixture.Definition{
			"name": func() any { return "generated" },
			"settings": map[string]any{
				"dark": true,
			},
		},
	}

	got, err := fixture.Resolve(def)
	require.NoError(t, err)

	want := fixture.Object{
		"id":    "user-id",
		"count": 3,
		"tags":  []any{"a", "b"},
		"since": when,
		"none":  nil,
		"profile": fixture.Object{
			"name": "generated",
			"settings": fixture.Object{
				"dark": true,
			},
		},
	}
	assert.Equal(t, want, got)
}

func TestResolve_GeneratorOutputTakenVerbatim(t *testing.T) {
	t.Parallel()

	// The inner func would fail the test if anything descended into the
	// generator's output and invoked it.
	inner := func() any {
		t.Fatal("generator output must not be resolved")
		return nil
	}

	def := fixture.Definition{
		"sub": fixture.Generator(func() any {
			return map[string]any{"fn": inner, "v": 1}
		}),
	}

	got, err := fixture.Resolve(def)
	require.NoError(t, err)

	sub, ok := got["sub"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, sub["v"])
	assert.NotNil(t, sub["fn"])
}

func TestResolve_GeneratorForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		leaf any
		want any
	}{
		{name: "named generator", leaf: fixture.Generator(func() any { return "g" }), want: "g"},
		{name: "func any", leaf: func() any { return 42 }, want: 42},
		{name: "func any error", leaf: func() (any, error) { return "ok", nil }, want: "ok"},
		{name: "func int", leaf: func() int { return 7 }, want: 7},
		{name: "func string", leaf: func() string { return "s" }, want: "s"},
		{name: "func float64 via reflection", leaf: func() float64 { return 1.5 }, want: 1.5},
		{name: "func bool via reflection", leaf: func() bool { return true }, want: true},
		{name: "func string error via reflection", leaf: func() (string, error) { return "se", nil }, want: "se"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := fixture.Resolve(fixture.Definition{"v": tc.leaf})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got["v"])
		})
	}
}

func TestResolve_FuncWithArgsIsOpaqueLeaf(t *testing.T) {
	t.Parallel()

	leaf := func(i int) int { return i }

	got, err := fixture.Resolve(fixture.Definition{"fn": leaf})
	require.NoError(t, err)

	_, ok := got["fn"].(func(int) int)
	assert.True(t, ok)
}

func TestResolve_TimeFuncIsGenerator(t *testing.T) {
	t.Parallel()

	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	got, err := fixture.Resolve(fixture.Definition{"at": func() time.Time { return when }})
	require.NoError(t, err)
	assert.Equal(t, when, got["at"])
}

func TestResolve_InvokesEachGeneratorExactlyOnce(t *testing.T) {
	t.Parallel()

	var top, nested int
	def := fixture.Definition{
		"a": func() any { top++; return top },
		"b": fixture.Definition{
			"c": func() any { nested++; return nested },
		},
	}

	_, err := fixture.Resolve(def)
	require.NoError(t, err)
	assert.Equal(t, 1, top)
	assert.Equal(t, 1, nested)

	_, err = fixture.Resolve(def)
	require.NoError(t, err)
	assert.Equal(t, 2, top)
	assert.Equal(t, 2, nested)
}

// Resolve – failure semantics

func TestResolve_GeneratorError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	def := fixture.Definition{
		"user": fixture.Definition{
			"name": func() (any, error) { return nil, boom },
		},
	}

	got, err := fixture.Resolve(def)
	require.Error(t, err)
	assert.Nil(t, got)

	var ge fixture.GeneratorError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "user.name", ge.Path)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, `fixture: generator at "user.name" failed: boom`, ge.Error())
}

func TestResolve_GeneratorPanicBecomesError(t *testing.T) {
	t.Parallel()

	def := fixture.Definition{
		"v": func() any { panic("kaboom") },
	}

	got, err := fixture.Resolve(def)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, fixture.ErrGeneratorPanic))

	var ge fixture.GeneratorError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "v", ge.Path)
	assert.Contains(t, ge.Error(), "kaboom")
}

func TestResolve_FailureIsAtomic(t *testing.T) {
	t.Parallel()

	// Keys resolve in sorted order, so "a" fails before "b" runs.
	var later int
	def := fixture.Definition{
		"a": func() (any, error) { return nil, errors.New("early failure") },
		"b": func() any { later++; return later },
	}

	got, err := fixture.Resolve(def)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Zero(t, later)
}

// Merge – policy

func TestMerge_Identity(t *testing.T) {
	t.Parallel()

	base := fixture.Object{"a": 1, "b": fixture.Object{"c": 2}}

	assert.Equal(t, fixture.Object{"a": 1, "b": fixture.Object{"c": 2}}, fixture.Merge(base, fixture.Override{}))
	assert.Equal(t, base, fixture.Merge(base, fixture.Absent))
}

func TestMerge_Policy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		base     any
		override any
		want     any
	}{
		{
			name:     "scalar override replaces",
			base:     fixture.Object{"k": 1},
			override: fixture.Override{"k": 2},
			want:     fixture.Object{"k": 2},
		},
		{
			name:     "nested merge keeps siblings",
			base:     fixture.Object{"p": fixture.Object{"a": true, "b": true}},
			override: fixture.Override{"p": fixture.Override{"a": false}},
			want:     fixture.Object{"p": fixture.Object{"a": false, "b": true}},
		},
		{
			name:     "explicit nil is a deliberate override",
			base:     fixture.Object{"k": 1},
			override: fixture.Override{"k": nil},
			want:     fixture.Object{"k": nil},
		},
		{
			name:     "zero values are deliberate overrides",
			base:     fixture.Object{"n": 5, "s": "x", "b": true},
			override: fixture.Override{"n": 0, "s": "", "b": false},
			want:     fixture.Object{"n": 0, "s": "", "b": false},
		},
		{
			name:     "union includes override-only keys",
			base:     fixture.Object{"a": 1},
			override: fixture.Override{"b": 2},
			want:     fixture.Object{"a": 1, "b": 2},
		},
		{
			name:     "map override onto scalar base",
			base:     fixture.Object{"k": 1},
			override: fixture.Override{"k": fixture.Override{"sub": 2}},
			want:     fixture.Object{"k": fixture.Object{"sub": 2}},
		},
		{
			name:     "whole override is scalar",
			base:     fixture.Object{"a": 1},
			override: "replacement",
			want:     "replacement",
		},
		{
			name:     "whole override is nil",
			base:     fixture.Object{"a": 1},
			override: nil,
			want:     nil,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, fixture.Merge(tc.base, tc.override))
		})
	}
}

func TestMerge_ArrayAndDateAtomicity(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		fixture.Object{"a": []any{3}},
		fixture.Merge(fixture.Object{"a": []any{1, 2}}, fixture.Override{"a": []any{3}}),
	)

	was := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t,
		fixture.Object{"at": now},
		fixture.Merge(fixture.Object{"at": was}, fixture.Override{"at": now}),
	)
}

func TestMerge_AbsentHandling(t *testing.T) {
	t.Parallel()

	// Absent as an override value keeps the base value.
	got := fixture.Merge(fixture.Object{"a": 1}, fixture.Override{"a": fixture.Absent})
	assert.Equal(t, fixture.Object{"a": 1}, got)

	// Entries that resolve to Absent on both sides are dropped entirely.
	got = fixture.Merge(
		fixture.Object{"a": 1, "gone": fixture.Absent},
		fixture.Override{"b": fixture.Absent},
	)
	assert.Equal(t, fixture.Object{"a": 1}, got)

	// Absent nested below a mergeable override behaves the same.
	got = fixture.Merge(
		fixture.Object{"p": fixture.Object{"a": 1}},
		fixture.Override{"p": fixture.Override{"a": fixture.Absent, "b": 2}},
	)
	assert.Equal(t, fixture.Object{"p": fixture.Object{"a": 1, "b": 2}}, got)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := fixture.Object{"p": fixture.Object{"a": 1}}
	override := fixture.Override{"p": fixture.Override{"b": 2}}

	_ = fixture.Merge(base, override)

	assert.Equal(t, fixture.Object{"p": fixture.Object{"a": 1}}, base)
	assert.Equal(t, fixture.Override{"p": fixture.Override{"b": 2}}, override)
}

// End-to-end scenario

func TestGenerate_EndToEnd(t *testing.T) {
	t.Parallel()

	users := fixture.New(fixture.Definition{
		"id":       "user-id",
		"username": "username",
		"preferences": fixture.Definition{
			"a": true,
			"b": true,
		},
	})

	got, err := users.Generate(fixture.Override{
		"username": "x",
		"preferences": fixture.Override{
			"a": false,
		},
	})
	require.NoError(t, err)

	want := fixture.Object{
		"id":       "user-id",
		"username": "x",
		"preferences": fixture.Object{
			"a": false,
			"b": true,
		},
	}
	assert.Equal(t, want, got)
}
