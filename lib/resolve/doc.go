// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve merges command-line occurrences with environment and
// configuration sources into final typed values, one per argument on
// the matched command path.
//
// Sources are evaluated in strict priority order (command line,
// environment, configuration mapping, declared default) with the
// first non-absent source winning for scalars. Arguments with the
// append accumulation policy concatenate every supplying source in the
// same priority order instead, so lower-priority values are never
// silently dropped. Every resolved value carries its provenance.
//
// Configuration lookup is scoped: the resolver descends the nested
// mapping along the matched subcommand path and falls back outward
// from the deepest scope. A key explicitly set to null at a higher
// priority unsets everything below it, including the default.
//
// Key exports:
//
//   - [Merge] -- the precedence merge
//   - [Input] -- raw command-line occurrences from the matcher
//   - [Options] -- environment lookup, config mapping, logger
package resolve
