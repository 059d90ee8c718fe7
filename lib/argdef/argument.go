// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package argdef

import "github.com/argsmith/argsmith/lib/value"

// Argument defines one typed argument of a command: a flag, a
// positional, or a trailing catch-all. The zero value of Kind means
// "string" and the zero value of Arity means "exactly one value"
// (or "no value" for presence flags); Finalize normalizes both.
type Argument struct {
	// Name is the canonical long name, used for lookup on the command
	// line ("--name"), in value sets, and in constraint references.
	Name string

	// Short is the optional single-rune short flag (e.g. 'v' for -v).
	Short rune

	// Aliases are additional long names resolving to this argument.
	Aliases []string

	// Help is the one-line description shown in usage output.
	Help string

	// Kind describes how literals convert to typed values. Left zero
	// it defaults to the string type. KindName may be used instead to
	// reference a type registered in the tree's value registry.
	Kind value.Type

	// KindName looks up the Kind in the registry at finalize time.
	// Set either Kind or KindName, not both.
	KindName string

	// Arity is the number of values one occurrence consumes.
	Arity Arity

	// Default is the default literal, applied with Default provenance
	// when no other source supplies a value. HasDefault distinguishes
	// an empty-string default from no default at all.
	Default    string
	HasDefault bool

	// Env is the bound environment variable name, read case-sensitively
	// during precedence resolution. Empty means no environment binding.
	Env string

	// Required makes the absence of a value from every source an error.
	Required bool

	// ConflictsWith lists argument names that may not be present
	// together with this one. The relation is symmetric; declaring it
	// on one side is sufficient.
	ConflictsWith []string

	// Requires lists argument names that must be present whenever this
	// argument is present.
	Requires []string

	// Group is the owning group id, if any.
	Group string

	// Append selects the accumulation policy for multi-valued
	// arguments during the multi-source merge: instead of the highest
	// priority source replacing the rest, every supplying source
	// contributes, in priority order. Ignored for scalars.
	Append bool

	// Positional marks the argument as consumed by position rather
	// than matched by flag name.
	Positional bool

	// Trailing marks a catch-all positional: once positional slots are
	// exhausted it swallows every remaining token, including ones that
	// look like flags. Implies Positional and an unbounded arity. At
	// most one per command, and it must be the last positional.
	Trailing bool

	// Global propagates the argument to every descendant command.
	// Global arguments cannot be positional.
	Global bool

	// owner is the command that declared the argument, set by Finalize.
	owner *Command
}

// Owner returns the command that declared the argument. Nil before
// Finalize.
func (a *Argument) Owner() *Command { return a.owner }

// Multi reports whether the argument can accumulate more than one
// value, either through arity or through repeated occurrences with
// the append policy.
func (a *Argument) Multi() bool {
	return a.Arity.Unbounded() || a.Arity.Max > 1 || a.Append
}

// DisplayName returns the name as the user types it: "--name" for
// flags, the bare name for positionals.
func (a *Argument) DisplayName() string {
	if a.Positional {
		return a.Name
	}
	return "--" + a.Name
}

// Group is a named constraint over a set of arguments. Membership is
// the union of the Members list and every argument declaring the group
// id in its Group field.
type Group struct {
	// ID is the group identifier, unique within its command.
	ID string

	// Members lists member argument names.
	Members []string

	// Required demands that at least one member is ultimately present.
	Required bool

	// Multiple allows more than one member to be present at once.
	// When false the group is mutually exclusive.
	Multiple bool

	// members is the resolved member set in declaration order, built
	// by Finalize.
	members []*Argument
}

// ResolvedMembers returns the member arguments in declaration order.
// Empty before Finalize.
func (g *Group) ResolvedMembers() []*Argument { return g.members }
