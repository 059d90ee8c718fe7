// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/argsmith/argsmith/lib/argdef"
	"github.com/argsmith/argsmith/lib/confmap"
	"github.com/argsmith/argsmith/lib/constraint"
	"github.com/argsmith/argsmith/lib/match"
	"github.com/argsmith/argsmith/lib/resolve"
	"github.com/argsmith/argsmith/lib/usage"
)

// Options configures a Parser's external collaborators. The engine
// performs no I/O of its own: environment and configuration arrive as
// a lookup function and an already-parsed mapping.
type Options struct {
	// LookupEnv reads bound environment variables. Nil means
	// os.LookupEnv; tests supply a snapshot instead.
	LookupEnv func(name string) (string, bool)

	// Config is the pre-parsed configuration mapping, or nil.
	Config confmap.Map

	// Logger receives debug traces from the matcher and resolver.
	// Nil disables logging entirely.
	Logger *slog.Logger

	// Output receives help and version text rendered by Execute.
	// Nil means os.Stdout.
	Output io.Writer

	// Dir is the working directory recorded in the invocation handed
	// to handlers. Empty means the process working directory.
	Dir string
}

// Parser binds a finalized tree to its sources. It is safe for
// concurrent use: every Parse call works on its own state.
type Parser struct {
	tree *argdef.Tree
	opts Options
}

// New returns a Parser over the finalized tree.
func New(tree *argdef.Tree, opts Options) *Parser {
	return &Parser{tree: tree, opts: opts}
}

// Result is the outcome of one parse call. Exactly one of two shapes:
// a display request (help/version, Values nil), or a normal match with
// the full value set.
type Result struct {
	// Path is the matched command chain from root to leaf.
	Path []*argdef.Command

	// Values holds the final merged values. Nil when Display is set.
	Values *argdef.ValueSet

	// Display is the help/version short-circuit signal, nil for a
	// normal match.
	Display *usage.Request

	// Argv is the raw argument vector as given.
	Argv []string
}

// Leaf returns the last command on the matched path.
func (r *Result) Leaf() *argdef.Command {
	return r.Path[len(r.Path)-1]
}

// Parse runs the pipeline short of routing: tokenize and match argv,
// parse and merge values from every source, and validate constraints.
// The first usage or value violation is returned as the error; a help
// or version flag yields a Result with Display set and no error.
func (p *Parser) Parse(argv []string) (*Result, error) {
	matched, display, err := match.Run(p.tree, argv, p.opts.Logger)
	if err != nil {
		return nil, err
	}
	if display != nil {
		return &Result{Path: display.Path, Display: display, Argv: argv}, nil
	}

	values, err := resolve.Merge(matched.Path, resolve.Input{
		Occurrences: matched.Occurrences,
		Present:     matched.Present,
	}, resolve.Options{
		LookupEnv: p.opts.LookupEnv,
		Config:    p.opts.Config,
		Logger:    p.opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	if err := constraint.Validate(matched.Path, values); err != nil {
		return nil, err
	}

	return &Result{Path: matched.Path, Values: values, Argv: argv}, nil
}

// Execute parses argv and routes. Display requests render to the
// configured output and return nil. Otherwise the handler registered
// for the routed command runs with the invocation context; its error
// is returned verbatim for the application to map onto an exit code.
func (p *Parser) Execute(ctx context.Context, argv []string) error {
	result, err := p.Parse(argv)
	if err != nil {
		return err
	}

	if result.Display != nil {
		out := p.opts.Output
		if out == nil {
			out = os.Stdout
		}
		usage.Render(out, p.tree, result.Display)
		return nil
	}

	// Dispatch through the routing table computed at finalize.
	command, ok := p.tree.Route(argdef.RouteOf(result.Path))
	if !ok || command != result.Leaf() {
		// Unreachable for a finalized tree; kept as a guard against a
		// mutated-after-finalize definition.
		return &usage.Error{
			Kind:    usage.InvalidSubcommand,
			Command: result.Leaf().FullName(),
			Subject: result.Leaf().Name,
			Detail:  "command missing from routing table",
		}
	}

	if command.Run == nil {
		return &usage.Error{
			Kind:    usage.InvalidSubcommand,
			Command: command.FullName(),
			Subject: command.Name,
			Detail:  "subcommand required",
		}
	}

	dir := p.opts.Dir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}

	return command.Run(ctx, &argdef.Invocation{
		Path:   result.Path,
		Values: result.Values,
		Argv:   argv,
		Dir:    dir,
		Tree:   p.tree,
	})
}

// ExitCode maps an Execute error onto the conventional process exit
// code: 0 for nil (success or rendered display request), 2 for usage
// and value errors, and 1 for handler failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code := usage.ExitCode(err); code >= 0 {
		return code
	}
	return 1
}
