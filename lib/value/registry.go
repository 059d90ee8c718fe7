// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "fmt"

// Registry maps descriptor names to value types. A registry is built
// up front, builtins plus application custom types, and then treated
// as read-only, so a finalized command tree can share it across
// concurrent parse calls. Register is not safe to call concurrently
// with Lookup.
type Registry struct {
	types map[string]Type
}

// NewRegistry returns a registry seeded with every builtin type under
// its descriptor name: string, bool, int, uint, float, path, key=value,
// duration, semver, and uuid. Parameterized types (ranges, enums,
// lists) have no fixed name and are attached to arguments directly.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type)}
	for _, t := range []Type{
		String(), Bool(), Int(), Uint(), Float(),
		Path(), KeyValue(), Duration(), SemVer(), UUID(),
	} {
		r.types[t.name] = t
	}
	return r
}

// Register adds a custom type. Re-registering an existing name is an
// error: silently shadowing a builtin would change parse behavior for
// every argument referencing it by name.
func (r *Registry) Register(t Type) error {
	if t.name == "" {
		return fmt.Errorf("value type has empty name")
	}
	if t.parse == nil {
		return fmt.Errorf("value type %q has no parse function", t.name)
	}
	if _, exists := r.types[t.name]; exists {
		return fmt.Errorf("value type %q already registered", t.name)
	}
	r.types[t.name] = t
	return nil
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}
