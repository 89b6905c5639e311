package fixture

// Registry is a simple named collection of factories, for sharing fixtures
// across test packages without package-level globals.
//
// It is intentionally:
// - populated once, up front
// - read-only afterwards
// - free of side effects beyond the factories it hands out
//
// Expected usage:
//
//	reg := fixture.NewRegistry().
//		Provide("user", userFactory).
//		Provide("post", postFactory)
//
//	obj, err := reg.Generate("user")
type Registry struct {
	items map[string]*Factory
}

func NewRegistry() *Registry {
	return &Registry{items: map[string]*Factory{}}
}

// Provide stores a factory under a name and returns the registry for
// chaining. Providing an existing name overwrites it.
func (r *Registry) Provide(name string, f *Factory) *Registry {
	r.items[name] = f
	return r
}

// Get returns the factory if present (no panic).
func (r *Registry) Get(name string) (*Factory, bool) {
	f, ok := r.items[name]
	return f, ok
}

// MustGet returns the factory or panics with UnknownFactoryError.
// Useful in tests where a missing fixture name should fail fast.
func (r *Registry) MustGet(name string) *Factory {
	f, ok := r.items[name]
	if !ok {
		panic(UnknownFactoryError{Name: name})
	}
	return f
}

// Generate looks up a factory by name and generates from it in one step.
// It returns UnknownFactoryError if the name was never provided.
func (r *Registry) Generate(name string, overrides ...Override) (Object, error) {
	f, ok := r.items[name]
	if !ok {
		return nil, UnknownFactoryError{Name: name}
	}
	return f.Generate(overrides...)
}
