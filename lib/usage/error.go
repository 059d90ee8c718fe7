// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package usage

import (
	"errors"
	"fmt"

	"github.com/argsmith/argsmith/lib/argdef"
	"github.com/argsmith/argsmith/lib/value"
)

// Kind classifies a usage violation.
type Kind int

const (
	// UnknownArgument means a flag or positional that no definition
	// accounts for. Carries the closest declared name as a suggestion.
	UnknownArgument Kind = iota
	// InvalidSubcommand means a bare word at a command with
	// subcommands that matches none of them.
	InvalidSubcommand
	// WrongArity means a flag or positional received fewer values than
	// its arity floor demands, or a value where none is taken.
	WrongArity
	// MissingRequiredArgument means a required argument got no value
	// from any source.
	MissingRequiredArgument
	// ArgumentConflict means two mutually exclusive arguments are both
	// present.
	ArgumentConflict
	// GroupViolation means a required group has no present member, or
	// an exclusive group has more than one.
	GroupViolation
	// MissingDependency means a present argument's required
	// co-occurring argument is absent.
	MissingDependency
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case UnknownArgument:
		return "unknown argument"
	case InvalidSubcommand:
		return "invalid subcommand"
	case WrongArity:
		return "wrong number of values"
	case MissingRequiredArgument:
		return "missing required argument"
	case ArgumentConflict:
		return "argument conflict"
	case GroupViolation:
		return "group violation"
	case MissingDependency:
		return "missing dependency"
	default:
		return fmt.Sprintf("usage kind(%d)", int(k))
	}
}

// Error is a usage violation: the first fatal condition matching or
// validation encountered. Command locates the violation on the command
// path; Subject is the offending argument or literal as the user typed
// it; Suggestion, when non-empty, is the closest declared name.
type Error struct {
	Kind       Kind
	Command    string
	Subject    string
	Suggestion string
	Detail     string
}

// Error implements the error interface: kind, subject, detail, and
// suggestion on one line.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q", e.Kind, e.Subject)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Request is the help/version short-circuit signal. It is not an
// error: it bypasses constraint validation and routing, and the caller
// renders scoped output for the command level that triggered it.
type Request struct {
	// Version is false for help, true for version output.
	Version bool

	// Path is the command chain from the root to the level whose flag
	// triggered the request.
	Path []*argdef.Command
}

// Command returns the command whose help or version was requested.
func (r *Request) Command() *argdef.Command {
	return r.Path[len(r.Path)-1]
}

// ExitCode maps a parse outcome to the conventional process exit code:
// 0 for success or a display request, 2 for usage, value, and
// constraint errors. Handler errors are not the engine's to map; they
// return -1 here so callers can apply application-specific codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *Error
	var valueErr *value.Error
	if errors.As(err, &usageErr) || errors.As(err, &valueErr) {
		return 2
	}
	return -1
}
