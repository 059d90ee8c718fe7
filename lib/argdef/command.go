// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package argdef

import "strings"

// Command is one node of the definition tree: a command or subcommand
// with its own arguments, groups, and children. Commands are written
// as nested struct literals and validated by [Builder.Finalize]; after
// that the tree is immutable.
type Command struct {
	// Name is the command name as typed by the user.
	Name string

	// Summary is a one-line description shown in the parent's listing.
	Summary string

	// Description is the detailed text shown in the command's own help.
	Description string

	// Args are the command's argument definitions, in declaration
	// order. Order matters: positionals fill by it and constraint
	// violations are reported by it.
	Args []*Argument

	// Groups are the command's argument groups.
	Groups []*Group

	// Subcommands are nested commands dispatched by the first matching
	// positional token.
	Subcommands []*Command

	// Examples are shown in help output after the description.
	Examples []Example

	// Run executes the command once matching, resolution, and
	// validation have all succeeded. Every reachable leaf must have a
	// handler; Finalize reports the ones that don't.
	Run Handler

	// Computed by Finalize.
	parent      *Command
	visible     []*Argument          // ancestors' globals then own, declaration order
	longIndex   map[string]*Argument // canonical names and aliases
	shortIndex  map[rune]*Argument
	positionals []*Argument // own positionals in declaration order
	groupIndex  map[string]*Group
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// Parent returns the parent command, nil for the root.
func (c *Command) Parent() *Command { return c.parent }

// Path returns the command names from the root to this command.
func (c *Command) Path() []string {
	if c.parent == nil {
		return []string{c.Name}
	}
	return append(c.parent.Path(), c.Name)
}

// FullName returns the space-joined path, e.g. "demo config set".
func (c *Command) FullName() string {
	return strings.Join(c.Path(), " ")
}

// Leaf reports whether the command has no subcommands.
func (c *Command) Leaf() bool { return len(c.Subcommands) == 0 }

// Visible returns the command's effective visible arguments: every
// ancestor's global arguments followed by the command's own, in
// declaration order. The slice is shared; callers must not mutate it.
func (c *Command) Visible() []*Argument { return c.visible }

// Positionals returns the command's own positional arguments in
// declaration order.
func (c *Command) Positionals() []*Argument { return c.positionals }

// LookupLong resolves a long flag name or alias against the effective
// visible set.
func (c *Command) LookupLong(name string) (*Argument, bool) {
	arg, ok := c.longIndex[name]
	return arg, ok
}

// LookupShort resolves a short flag rune against the effective visible
// set.
func (c *Command) LookupShort(r rune) (*Argument, bool) {
	arg, ok := c.shortIndex[r]
	return arg, ok
}

// LookupGroup resolves a group id declared on this command.
func (c *Command) LookupGroup(id string) (*Group, bool) {
	g, ok := c.groupIndex[id]
	return g, ok
}

// Subcommand returns the child with the given name.
func (c *Command) Subcommand(name string) (*Command, bool) {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub, true
		}
	}
	return nil, false
}

// FlagAliases returns every way the visible flags can be spelled,
// with dashes ("--port", "-p"). Used for unknown-flag suggestions.
func (c *Command) FlagAliases() []string {
	var out []string
	for _, arg := range c.visible {
		if arg.Positional {
			continue
		}
		out = append(out, "--"+arg.Name)
		for _, alias := range arg.Aliases {
			out = append(out, "--"+alias)
		}
		if arg.Short != 0 {
			out = append(out, "-"+string(arg.Short))
		}
	}
	return out
}
