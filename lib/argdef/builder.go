// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package argdef

import (
	"fmt"
	"maps"

	"github.com/argsmith/argsmith/lib/value"
)

// Builder validates a command tree and produces the immutable [Tree].
// Configuration calls may happen in any order; every well-formedness
// check is deferred to [Builder.Finalize], which reports all problems
// in one batch.
type Builder struct {
	root     *Command
	registry *value.Registry
	version  string
}

// NewBuilder starts a builder for the given root command. The builder
// takes ownership of the command structs: after Finalize they must not
// be mutated.
func NewBuilder(root *Command) *Builder {
	return &Builder{root: root}
}

// WithRegistry sets the value type registry used to resolve KindName
// references. Defaults to a fresh registry with only the builtins.
func (b *Builder) WithRegistry(r *value.Registry) *Builder {
	b.registry = r
	return b
}

// WithVersion sets the application version and auto-registers a
// --version/-V flag on the root command.
func (b *Builder) WithVersion(version string) *Builder {
	b.version = version
	return b
}

// Finalize walks the tree once, computing lookup maps, effective
// visible argument sets, and the routing table, and collecting every
// definition problem. On any problem it returns a nil tree and a
// [*BuildError] batching all of them.
func (b *Builder) Finalize() (*Tree, error) {
	if b.root == nil {
		return nil, &BuildError{Problems: []Problem{{
			Kind: InvalidDefinition, Command: "", Subject: "root", Detail: "root command is nil",
		}}}
	}

	registry := b.registry
	if registry == nil {
		registry = value.NewRegistry()
	}

	tree := &Tree{
		root:     b.root,
		registry: registry,
		version:  b.version,
		routes:   make(map[string]*Command),
	}

	f := &finalizer{tree: tree, visited: make(map[*Command]bool)}
	f.injectBuiltinFlags()
	f.walk(b.root, nil, make(map[string]string))

	if len(f.problems) > 0 {
		return nil, &BuildError{Problems: f.problems}
	}
	return tree, nil
}

// finalizer holds the single-pass walk state.
type finalizer struct {
	tree     *Tree
	visited  map[*Command]bool
	problems []Problem
}

func (f *finalizer) problem(kind ProblemKind, command *Command, subject, format string, args ...any) {
	path := ""
	if command != nil {
		path = command.FullName()
	}
	f.problems = append(f.problems, Problem{
		Kind:    kind,
		Command: path,
		Subject: subject,
		Detail:  fmt.Sprintf(format, args...),
	})
}

// injectBuiltinFlags adds the global --help/-h flag and, when the
// builder carries a version, the root-only --version/-V flag. User
// definitions of the same names win: nothing is injected over them.
func (f *finalizer) injectBuiltinFlags() {
	root := f.tree.root
	taken := make(map[string]bool)
	shortTaken := make(map[rune]bool)
	for _, arg := range root.Args {
		taken[arg.Name] = true
		if arg.Short != 0 {
			shortTaken[arg.Short] = true
		}
	}

	if !taken["help"] {
		help := &Argument{
			Name:   "help",
			Help:   "show help and exit",
			Kind:   value.Bool(),
			Global: true,
		}
		if !shortTaken['h'] {
			help.Short = 'h'
		}
		root.Args = append(root.Args, help)
		f.tree.helpArg = help
	}

	if f.tree.version != "" && !taken["version"] {
		version := &Argument{
			Name: "version",
			Help: "show version and exit",
			Kind: value.Bool(),
		}
		if !shortTaken['V'] {
			version.Short = 'V'
		}
		root.Args = append(root.Args, version)
		f.tree.versionArg = version
	}
}

// walk validates one command and recurses into its subcommands.
// parent is nil for the root; pathNames maps every non-global argument
// name declared by an ancestor to that ancestor's full name.
func (f *finalizer) walk(c *Command, parent *Command, pathNames map[string]string) {
	if f.visited[c] {
		f.problem(InvalidDefinition, parent, c.Name, "command node appears more than once in the tree")
		return
	}
	f.visited[c] = true
	c.parent = parent

	if c.Name == "" {
		f.problem(InvalidDefinition, parent, "(unnamed)", "command has empty name")
	}

	f.normalizeArgs(c)
	f.buildVisible(c)
	f.buildIndexes(c)
	f.buildPositionals(c)
	f.buildGroups(c)
	f.checkConstraintRefs(c)
	f.checkPathNames(c, pathNames)

	if c.Leaf() && c.Run == nil {
		f.problem(UnregisteredHandler, c, c.Name, "leaf command has no handler")
	}

	f.tree.routes[RouteOf(append(pathTo(c), c))] = c

	childNames := maps.Clone(pathNames)
	for _, arg := range c.Args {
		if arg.Name != "" && !arg.Global {
			childNames[arg.Name] = c.FullName()
		}
	}

	seen := make(map[string]bool)
	for _, sub := range c.Subcommands {
		if seen[sub.Name] {
			f.problem(DuplicateName, c, sub.Name, "subcommand name declared twice")
		}
		seen[sub.Name] = true
		f.walk(sub, c, childNames)
	}
}

// checkPathNames rejects an argument whose name is already declared by
// an ancestor command. The two are never visible together, but both
// resolve on the same matched path and the value set keys results by
// canonical name. Inherited globals are covered by buildIndexes.
func (f *finalizer) checkPathNames(c *Command, pathNames map[string]string) {
	for _, arg := range c.Args {
		if arg.Name == "" {
			continue
		}
		if owner, taken := pathNames[arg.Name]; taken {
			f.problem(DuplicateName, c, arg.Name,
				"argument name already declared on %q; one matched path would resolve both", owner)
		}
	}
}

// pathTo returns the already-linked ancestors of c, root first.
func pathTo(c *Command) []*Command {
	var path []*Command
	for p := c.parent; p != nil; p = p.parent {
		path = append([]*Command{p}, path...)
	}
	return path
}

// normalizeArgs applies the zero-value defaults and validates each
// argument the command itself declares.
func (f *finalizer) normalizeArgs(c *Command) {
	for _, arg := range c.Args {
		arg.owner = c

		if arg.Name == "" {
			f.problem(InvalidDefinition, c, "(unnamed)", "argument has empty name")
			continue
		}

		if arg.KindName != "" {
			if !arg.Kind.IsZero() {
				f.problem(UnknownKind, c, arg.Name, "both Kind and KindName set")
			} else if kind, ok := f.tree.registry.Lookup(arg.KindName); ok {
				arg.Kind = kind
			} else {
				f.problem(UnknownKind, c, arg.Name, "value kind %q not registered", arg.KindName)
			}
		}
		if arg.Kind.IsZero() {
			arg.Kind = value.String()
		}

		if arg.Trailing {
			arg.Positional = true
			if arg.Arity == (Arity{}) {
				arg.Arity = ArityRest(0)
			} else if !arg.Arity.Unbounded() {
				f.problem(InvalidArity, c, arg.Name, "trailing argument needs an unbounded arity, got %s", arg.Arity)
			}
		}

		switch {
		case arg.Kind.IsFlag():
			if arg.Arity != (Arity{}) && arg.Arity != ArityFlag() {
				f.problem(InvalidArity, c, arg.Name, "presence flag cannot take values, got arity %s", arg.Arity)
			}
			arg.Arity = ArityFlag()
		case arg.Arity == (Arity{}):
			arg.Arity = AritySingle()
		}

		if !arg.Arity.valid() {
			f.problem(InvalidArity, c, arg.Name, "incoherent arity bounds %d..%d", arg.Arity.Min, arg.Arity.Max)
		}

		if arg.Positional {
			if arg.Global {
				f.problem(InvalidDefinition, c, arg.Name, "positional argument cannot be global")
			}
			if arg.Short != 0 || len(arg.Aliases) > 0 {
				f.problem(InvalidDefinition, c, arg.Name, "positional argument cannot have flag aliases")
			}
			if !arg.Arity.Takes() {
				f.problem(InvalidArity, c, arg.Name, "positional argument must consume at least one value")
			}
		}

		if arg.HasDefault {
			if arg.Required {
				f.problem(InvalidDefinition, c, arg.Name, "default on a required argument is unreachable")
			}
			if _, err := arg.Kind.Parse(arg.Default); err != nil {
				f.problem(InvalidDefault, c, arg.Name, "default literal %q: %v", arg.Default, err)
			}
		}
	}
}

// buildVisible computes the effective visible set: ancestor globals by
// pointer (no copies) followed by the command's own arguments, in
// declaration order.
func (f *finalizer) buildVisible(c *Command) {
	var visible []*Argument
	if c.parent != nil {
		for _, arg := range c.parent.visible {
			if arg.Global {
				visible = append(visible, arg)
			}
		}
	}
	c.visible = append(visible, c.Args...)
}

// buildIndexes builds the long and short lookup maps over the visible
// set and reports name collisions, including collisions between an
// inherited global and a local argument.
func (f *finalizer) buildIndexes(c *Command) {
	c.longIndex = make(map[string]*Argument)
	c.shortIndex = make(map[rune]*Argument)

	addLong := func(name string, arg *Argument) {
		if prior, taken := c.longIndex[name]; taken && prior != arg {
			f.problem(DuplicateName, c, name, "argument name used by both %q and %q", prior.Name, arg.Name)
			return
		}
		c.longIndex[name] = arg
	}

	for _, arg := range c.visible {
		addLong(arg.Name, arg)
		for _, alias := range arg.Aliases {
			addLong(alias, arg)
		}
		if arg.Short != 0 {
			if prior, taken := c.shortIndex[arg.Short]; taken && prior != arg {
				f.problem(DuplicateName, c, "-"+string(arg.Short), "short flag used by both %q and %q", prior.Name, arg.Name)
				continue
			}
			c.shortIndex[arg.Short] = arg
		}
	}
}

// buildPositionals orders the command's own positionals and enforces
// the trailing rules.
func (f *finalizer) buildPositionals(c *Command) {
	c.positionals = nil
	trailingSeen := false
	for _, arg := range c.Args {
		if !arg.Positional {
			continue
		}
		switch {
		case trailingSeen && arg.Trailing:
			f.problem(InvalidDefinition, c, arg.Name, "more than one trailing catch-all")
		case trailingSeen:
			f.problem(InvalidDefinition, c, arg.Name, "positional declared after the trailing catch-all")
		case arg.Trailing:
			trailingSeen = true
		}
		c.positionals = append(c.positionals, arg)
	}
}

// buildGroups resolves group membership: the Members list plus every
// argument declaring the group id, in declaration order.
func (f *finalizer) buildGroups(c *Command) {
	c.groupIndex = make(map[string]*Group)
	for _, g := range c.Groups {
		if g.ID == "" {
			f.problem(InvalidDefinition, c, "(unnamed)", "group has empty id")
			continue
		}
		if _, taken := c.groupIndex[g.ID]; taken {
			f.problem(DuplicateName, c, g.ID, "group id declared twice")
			continue
		}
		c.groupIndex[g.ID] = g

		g.members = nil
		seen := make(map[*Argument]bool)
		for _, name := range g.Members {
			arg, ok := c.longIndex[name]
			if !ok {
				f.problem(DanglingReference, c, g.ID, "group member %q is not a visible argument", name)
				continue
			}
			if !seen[arg] {
				seen[arg] = true
				g.members = append(g.members, arg)
			}
		}
		for _, arg := range c.visible {
			if arg.Group == g.ID && !seen[arg] {
				seen[arg] = true
				g.members = append(g.members, arg)
			}
		}
	}

	for _, arg := range c.Args {
		if arg.Group == "" {
			continue
		}
		if _, ok := c.groupIndex[arg.Group]; !ok {
			f.problem(DanglingReference, c, arg.Name, "owning group %q is not declared on %q", arg.Group, c.Name)
		}
	}
}

// checkConstraintRefs validates conflict and dependency references and
// rejects the combinations that could never validate.
func (f *finalizer) checkConstraintRefs(c *Command) {
	for _, arg := range c.Args {
		for _, name := range arg.ConflictsWith {
			other, ok := c.longIndex[name]
			if !ok {
				f.problem(DanglingReference, c, arg.Name, "conflicts with unknown argument %q", name)
				continue
			}
			if other == arg {
				f.problem(InvalidDefinition, c, arg.Name, "argument conflicts with itself")
				continue
			}
			// Report each impossible pair once: skip when the other
			// side declares the same conflict and sorts first.
			if declaresConflict(other, arg.Name) && other.Name < arg.Name {
				continue
			}
			if arg.Required && other.Required {
				f.problem(ImpossibleConstraint, c, arg.Name,
					"required arguments %q and %q conflict; no input can satisfy both", arg.Name, other.Name)
			}
			if arg.HasDefault && other.HasDefault {
				f.problem(ImpossibleConstraint, c, arg.Name,
					"conflicting arguments %q and %q both carry defaults; they would always be present together", arg.Name, other.Name)
			}
			if arg.Required && other.HasDefault || arg.HasDefault && other.Required {
				f.problem(ImpossibleConstraint, c, arg.Name,
					"arguments %q and %q conflict but one is required and the other defaulted; they would always be present together", arg.Name, other.Name)
			}
		}
		for _, name := range arg.Requires {
			if _, ok := c.longIndex[name]; !ok {
				f.problem(DanglingReference, c, arg.Name, "requires unknown argument %q", name)
			}
		}
	}
}

// declaresConflict reports whether arg lists name in its conflict set.
func declaresConflict(arg *Argument, name string) bool {
	for _, n := range arg.ConflictsWith {
		if n == name {
			return true
		}
	}
	return false
}
