package fixture

// Derive maps an arbitrary input value to a partial override tree. Derives
// are registered on a Factory under a key via Associate and applied via
// With.
type Derive func(value any) Override

// Factory bundles a Definition with registered traits and associations.
//
// A Factory is an immutable value: Trait, Associate, and With return a new
// Factory and never touch the receiver, so factories can be shared freely —
// including across concurrently running tests, provided the generator
// functions inside the definition are themselves safe to call concurrently.
type Factory struct {
	def     Definition
	traits  map[string]Definition
	derives map[string]Derive
}

// New constructs a Factory from a defaults definition. The trait and
// association maps start empty.
func New(def Definition) *Factory {
	return &Factory{
		def:     def,
		traits:  map[string]Definition{},
		derives: map[string]Derive{},
	}
}

// Definition returns the factory's current defaults definition.
//
// Callers must treat the returned map as read-only; mutating it would defeat
// the factory's value semantics.
func (f *Factory) Definition() Definition { return f.def }

// clone returns a copy of the Factory with fresh trait/association maps so
// further registration does not mutate the original.
func (f *Factory) clone() *Factory {
	cp := &Factory{
		def:     f.def,
		traits:  make(map[string]Definition, len(f.traits)),
		derives: make(map[string]Derive, len(f.derives)),
	}
	for k, v := range f.traits {
		cp.traits[k] = v
	}
	for k, v := range f.derives {
		cp.derives[k] = v
	}
	return cp
}

// Generate resolves the factory's definition and deep-merges the supplied
// overrides on top, folding them left to right. With no overrides it is
// equivalent to resolving the definition alone.
//
// A generator failure aborts the whole call; no partial object is returned.
func (f *Factory) Generate(overrides ...Override) (Object, error) {
	resolved, err := Resolve(f.def)
	if err != nil {
		return nil, err
	}
	merged := any(resolved)
	for _, o := range overrides {
		merged = Merge(merged, o)
	}
	out, _ := asMap(merged)
	return Object(out), nil
}

// MustGenerate is Generate or panic.
//
// It is a convenience for test code where a generation failure should fail
// the test immediately.
func (f *Factory) MustGenerate(overrides ...Override) Object {
	obj, err := f.Generate(overrides...)
	if err != nil {
		panic(err)
	}
	return obj
}

// Many generates count independent objects by calling Generate count times
// in order. Index-dependent variation comes from sequences inside the
// definition, not from Many itself.
//
// A negative count is rejected with InvalidCountError before any object is
// generated; count zero yields an empty slice. The first generation failure
// discards the partial batch.
func (f *Factory) Many(count int, overrides ...Override) ([]Object, error) {
	if count < 0 {
		return nil, InvalidCountError{Count: count}
	}
	out := make([]Object, 0, count)
	for i := 0; i < count; i++ {
		obj, err := f.Generate(overrides...)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// Trait returns a new Factory that additionally carries a named variant
// definition: the receiver's definition with overrides deep-merged on top,
// computed now, at registration time. Registering an existing name
// overwrites that trait in the new Factory.
//
// The receiver's own definition and previously registered traits and
// associations carry forward unchanged.
func (f *Factory) Trait(name string, overrides Override) *Factory {
	cp := f.clone()
	cp.traits[name] = toDefinition(Merge(f.def, overrides))
	return cp
}

// UseTrait returns the sub-factory for a registered trait name.
//
// ok is false if the name was never registered. The sub-factory is scoped to
// the trait's merged definition and carries all of the receiver's traits and
// associations, so it supports Generate, Many, and With like any Factory.
func (f *Factory) UseTrait(name string) (*Factory, bool) {
	def, ok := f.traits[name]
	if !ok {
		return nil, false
	}
	cp := f.clone()
	cp.def = def
	return cp, true
}

// TryTrait returns the sub-factory for a registered trait name, or
// UnknownTraitError if the name was never registered.
func (f *Factory) TryTrait(name string) (*Factory, error) {
	sub, ok := f.UseTrait(name)
	if !ok {
		return nil, UnknownTraitError{Name: name}
	}
	return sub, nil
}

// MustTrait returns the sub-factory for a registered trait name or panics
// with UnknownTraitError.
func (f *Factory) MustTrait(name string) *Factory {
	sub, ok := f.UseTrait(name)
	if !ok {
		panic(UnknownTraitError{Name: name})
	}
	return sub
}

// Associate returns a new Factory that additionally carries a derivation
// rule under key. The rule only takes effect when the key is supplied to
// With; the base definition is untouched. A nil fn is ignored at With time,
// as if the key were never registered.
func (f *Factory) Associate(key string, fn Derive) *Factory {
	cp := f.clone()
	cp.derives[key] = fn
	return cp
}

// With specializes the factory using registered associations: for every key
// present in both values and the association map, the derive function is
// applied to the supplied value and its override tree is deep-merged onto
// the definition. Keys are folded in sorted order, so when two derives
// contribute the same field the lexicographically later key wins. Keys never
// registered via Associate are silently ignored.
//
// The result is a full Factory carrying the receiver's traits and
// associations, so With chains with Trait, Many, and further With calls.
func (f *Factory) With(values map[string]any) *Factory {
	cp := f.clone()
	def := any(f.def)
	for _, k := range sortedKeys(values) {
		fn, ok := f.derives[k]
		if !ok || fn == nil {
			continue
		}
		def = Merge(def, fn(values[k]))
	}
	cp.def = toDefinition(def)
	return cp
}

func toDefinition(v any) Definition {
	m, ok := asMap(v)
	if !ok {
		return Definition{}
	}
	return Definition(m)
}
