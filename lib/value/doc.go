// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package value converts argument literals into typed Go values.
//
// A [Type] pairs a descriptor name with a pure parse function. The
// builtin types cover text, bounded integers, floats, presence flags,
// filesystem paths, enumerations, delimiter-separated lists, key=value
// pairs, durations, semantic versions, and UUIDs. Applications register
// custom types in a [Registry]; once registered they are
// indistinguishable from builtins to the rest of the engine.
//
// Parse failures are reported as [*Error] carrying the offending
// literal and a description of the expected shape, so callers can
// render precise messages without re-parsing anything.
//
// Key exports:
//
//   - [Type] and the builtin constructors ([String], [IntRange], [Enum], ...)
//   - [Registry] -- named lookup for custom descriptors
//   - [Error] -- structured parse failure
//
// This package depends on no other argsmith packages.
package value
