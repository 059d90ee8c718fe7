// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package argdef

import (
	"fmt"
	"strings"
)

// ProblemKind classifies one definition problem found by Finalize.
type ProblemKind int

const (
	// DuplicateName means two arguments, aliases, or subcommands share
	// a name within one command's scope.
	DuplicateName ProblemKind = iota
	// DanglingReference means a group member, conflict, or dependency
	// names an argument that does not exist in scope.
	DanglingReference
	// UnregisteredHandler means a reachable leaf command has no Run.
	UnregisteredHandler
	// ImpossibleConstraint means a constraint combination that can
	// never validate, e.g. two required arguments declared as
	// conflicting, or mutually conflicting arguments that both carry
	// defaults.
	ImpossibleConstraint
	// InvalidArity means the declared arity bounds are incoherent or
	// incompatible with the argument's kind or role.
	InvalidArity
	// UnknownKind means KindName is not registered in the value
	// registry.
	UnknownKind
	// InvalidDefault means the default literal does not parse under
	// the argument's own kind.
	InvalidDefault
	// InvalidDefinition covers remaining structural problems: global
	// positionals, a trailing argument that is not last, a node
	// appearing twice in the tree.
	InvalidDefinition
)

// String returns the kind name.
func (k ProblemKind) String() string {
	switch k {
	case DuplicateName:
		return "duplicate name"
	case DanglingReference:
		return "dangling reference"
	case UnregisteredHandler:
		return "unregistered handler"
	case ImpossibleConstraint:
		return "impossible constraint"
	case InvalidArity:
		return "invalid arity"
	case UnknownKind:
		return "unknown value kind"
	case InvalidDefault:
		return "invalid default"
	case InvalidDefinition:
		return "invalid definition"
	default:
		return fmt.Sprintf("problem kind(%d)", int(k))
	}
}

// Problem is one definition defect, located by command path and the
// offending argument, group, or subcommand name.
type Problem struct {
	Kind    ProblemKind
	Command string // full command path, e.g. "demo config set"
	Subject string // argument/group/subcommand name
	Detail  string
}

// String renders the problem on one line.
func (p Problem) String() string {
	return fmt.Sprintf("%s: %s %q: %s", p.Command, p.Kind, p.Subject, p.Detail)
}

// BuildError batches every definition problem found in one Finalize
// pass, so all of them are visible at once.
type BuildError struct {
	Problems []Problem
}

// Error implements the error interface, one problem per line.
func (e *BuildError) Error() string {
	if len(e.Problems) == 1 {
		return "definition error: " + e.Problems[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d definition errors:", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.String())
	}
	return b.String()
}

// Has reports whether any problem of the given kind was found.
func (e *BuildError) Has(kind ProblemKind) bool {
	for _, p := range e.Problems {
		if p.Kind == kind {
			return true
		}
	}
	return false
}
