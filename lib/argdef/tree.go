// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package argdef

import (
	"strings"

	"github.com/argsmith/argsmith/lib/value"
)

// Tree is the finalized, immutable definition model. It is safe to
// share across concurrent parse calls: every field is read-only after
// Finalize returns.
type Tree struct {
	root     *Command
	registry *value.Registry
	version  string

	// routes is the flat routing table computed at finalize: the
	// space-joined subcommand path (empty string for the root) mapped
	// to its node.
	routes map[string]*Command

	helpArg    *Argument
	versionArg *Argument
}

// Root returns the root command.
func (t *Tree) Root() *Command { return t.root }

// Registry returns the value type registry the tree was built with.
func (t *Tree) Registry() *value.Registry { return t.registry }

// Version returns the application version string, empty when the
// builder did not set one.
func (t *Tree) Version() string { return t.version }

// Route resolves a space-joined subcommand path ("config set", or ""
// for the root) to its command node.
func (t *Tree) Route(path string) (*Command, bool) {
	c, ok := t.routes[path]
	return c, ok
}

// RouteOf returns the routing key for a command reached during
// matching.
func RouteOf(path []*Command) string {
	if len(path) <= 1 {
		return ""
	}
	names := make([]string, 0, len(path)-1)
	for _, c := range path[1:] {
		names = append(names, c.Name)
	}
	return strings.Join(names, " ")
}

// IsHelp reports whether arg is the auto-registered help flag.
func (t *Tree) IsHelp(arg *Argument) bool {
	return t.helpArg != nil && arg == t.helpArg
}

// IsVersion reports whether arg is the auto-registered version flag.
func (t *Tree) IsVersion(arg *Argument) bool {
	return t.versionArg != nil && arg == t.versionArg
}
