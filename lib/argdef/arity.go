// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package argdef

import "fmt"

// Arity is the number of literal values one occurrence of an argument
// consumes. Min is the floor; Max is the ceiling, with a negative Max
// meaning unbounded ("rest").
type Arity struct {
	Min int
	Max int
}

// ArityFlag takes no value: presence alone is the signal.
func ArityFlag() Arity { return Arity{Min: 0, Max: 0} }

// AritySingle takes exactly one value. This is the default for any
// non-flag argument whose arity is left at the zero value.
func AritySingle() Arity { return Arity{Min: 1, Max: 1} }

// ArityExact takes exactly n values.
func ArityExact(n int) Arity { return Arity{Min: n, Max: n} }

// ArityRange takes between min and max values, greedily.
func ArityRange(min, max int) Arity { return Arity{Min: min, Max: max} }

// ArityRest takes at least min values with no upper bound.
func ArityRest(min int) Arity { return Arity{Min: min, Max: -1} }

// Takes reports whether the argument consumes any value tokens.
func (a Arity) Takes() bool { return a.Max != 0 }

// Unbounded reports whether there is no upper bound.
func (a Arity) Unbounded() bool { return a.Max < 0 }

// Wants reports whether an occurrence that has consumed n values may
// greedily take another.
func (a Arity) Wants(n int) bool { return a.Unbounded() || n < a.Max }

// Satisfied reports whether n consumed values meet the floor.
func (a Arity) Satisfied(n int) bool { return n >= a.Min }

// valid reports whether the bounds are coherent.
func (a Arity) valid() bool {
	if a.Min < 0 {
		return false
	}
	return a.Unbounded() || a.Max >= a.Min
}

// String renders the arity for error messages: "0", "1", "2..4", "1..".
func (a Arity) String() string {
	switch {
	case a.Unbounded():
		return fmt.Sprintf("%d..", a.Min)
	case a.Min == a.Max:
		return fmt.Sprintf("%d", a.Min)
	default:
		return fmt.Sprintf("%d..%d", a.Min, a.Max)
	}
}
