// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package argdef

import (
	"context"
	"fmt"
	"time"
)

// Provenance tags which source supplied a resolved value.
type Provenance int

const (
	// Absent means no source supplied a value and the argument is not
	// required; the resolved value is the type's absent representation.
	Absent Provenance = iota
	// CommandLine means the value came from the argument vector.
	CommandLine
	// Environment means the value came from the bound environment
	// variable.
	Environment
	// ConfigFile means the value came from the supplied configuration
	// mapping.
	ConfigFile
	// Default means the declared default literal supplied the value.
	Default
)

// String returns the provenance name.
func (p Provenance) String() string {
	switch p {
	case Absent:
		return "absent"
	case CommandLine:
		return "command line"
	case Environment:
		return "environment"
	case ConfigFile:
		return "config file"
	case Default:
		return "default"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// Resolved is an argument's final value after the multi-source merge:
// the typed value plus where it came from. For multi-valued arguments
// Value holds a []any in occurrence order; for presence flags it holds
// a bool.
type Resolved struct {
	Arg        *Argument
	Value      any
	Provenance Provenance
}

// Present reports whether any source supplied a value. A presence flag
// resolved to false is not present.
func (r Resolved) Present() bool {
	if r.Provenance == Absent {
		return false
	}
	if b, ok := r.Value.(bool); ok {
		return b
	}
	return true
}

// ValueSet is the final map of argument name to resolved value for one
// parse call, in effective-visible declaration order.
type ValueSet struct {
	order  []*Argument
	byName map[string]Resolved
}

// NewValueSet builds a value set from resolved values in order. The
// resolver is the only intended producer. Lookups key on the canonical
// argument name; Finalize guarantees names are unique along any
// matched path.
func NewValueSet(resolved []Resolved) *ValueSet {
	set := &ValueSet{byName: make(map[string]Resolved, len(resolved))}
	for _, r := range resolved {
		set.order = append(set.order, r.Arg)
		set.byName[r.Arg.Name] = r
	}
	return set
}

// Get returns the resolved value for the canonical argument name.
func (s *ValueSet) Get(name string) (Resolved, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// Has reports whether the argument is present (supplied by any source).
func (s *ValueSet) Has(name string) bool {
	r, ok := s.byName[name]
	return ok && r.Present()
}

// Provenance returns the source that supplied the argument's value.
func (s *ValueSet) Provenance(name string) Provenance {
	return s.byName[name].Provenance
}

// Args returns the arguments in declaration order. The slice is
// shared; callers must not mutate it.
func (s *ValueSet) Args() []*Argument { return s.order }

// String returns the value as a string, or "" when absent or not that
// type.
func (s *ValueSet) String(name string) string {
	v, _ := s.byName[name].Value.(string)
	return v
}

// Int returns the value as an int64, or 0 when absent.
func (s *ValueSet) Int(name string) int64 {
	v, _ := s.byName[name].Value.(int64)
	return v
}

// Uint returns the value as a uint64, or 0 when absent.
func (s *ValueSet) Uint(name string) uint64 {
	v, _ := s.byName[name].Value.(uint64)
	return v
}

// Float returns the value as a float64, or 0 when absent.
func (s *ValueSet) Float(name string) float64 {
	v, _ := s.byName[name].Value.(float64)
	return v
}

// Bool returns the value as a bool, or false when absent.
func (s *ValueSet) Bool(name string) bool {
	v, _ := s.byName[name].Value.(bool)
	return v
}

// Duration returns the value as a time.Duration, or 0 when absent.
func (s *ValueSet) Duration(name string) time.Duration {
	v, _ := s.byName[name].Value.(time.Duration)
	return v
}

// Slice returns a multi-valued argument's values in occurrence order,
// or nil when absent.
func (s *ValueSet) Slice(name string) []any {
	v, _ := s.byName[name].Value.([]any)
	return v
}

// Strings returns a multi-valued argument's values as strings,
// skipping any non-string elements.
func (s *ValueSet) Strings(name string) []string {
	raw := s.Slice(name)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if text, ok := v.(string); ok {
			out = append(out, text)
		}
	}
	return out
}

// Invocation is the execution context handed to a command handler:
// the matched path, the final values, and ambient process facts.
type Invocation struct {
	// Path is the matched command chain from root to leaf.
	Path []*Command

	// Values holds the final resolved values for every effective
	// visible argument on the path.
	Values *ValueSet

	// Argv is the raw argument vector as given to Parse.
	Argv []string

	// Dir is the working directory at parse time.
	Dir string

	// Tree is the definition tree, for introspection.
	Tree *Tree
}

// Leaf returns the matched leaf command.
func (inv *Invocation) Leaf() *Command {
	return inv.Path[len(inv.Path)-1]
}

// Handler executes a matched leaf command with its resolved values.
// The error is returned verbatim to the Execute caller; it is the
// application's to map onto an exit code.
type Handler func(ctx context.Context, inv *Invocation) error
