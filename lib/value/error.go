// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package value

import "fmt"

// ErrorKind classifies a value parse failure.
type ErrorKind int

const (
	// InvalidValue means the literal does not have the expected shape
	// at all (e.g. "abc" where an integer is required).
	InvalidValue ErrorKind = iota
	// OutOfRange means the literal parsed but violates a numeric bound.
	OutOfRange
	// UnknownEnumVariant means the literal is not one of the allowed
	// enumeration values.
	UnknownEnumVariant
)

// String returns the kind name for logs and tests.
func (k ErrorKind) String() string {
	switch k {
	case InvalidValue:
		return "invalid value"
	case OutOfRange:
		return "out of range"
	case UnknownEnumVariant:
		return "unknown variant"
	default:
		return fmt.Sprintf("error kind(%d)", int(k))
	}
}

// Error is a structured value parse failure. It always carries the
// offending literal and a human-readable description of the expected
// shape, per the engine's error contract.
type Error struct {
	Kind     ErrorKind
	Literal  string
	Expected string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: expected %s", e.Kind, e.Literal, e.Expected)
}

// invalid is shorthand for the common InvalidValue case.
func invalid(literal, expected string) *Error {
	return &Error{Kind: InvalidValue, Literal: literal, Expected: expected}
}
