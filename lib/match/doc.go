// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package match walks a token stream against a finalized definition
// tree: it resolves flags through each command's effective visible
// lookup maps, consumes values greedily up to each argument's arity,
// switches permanently into subcommands on exact positional matches,
// and collects raw per-argument occurrences tagged as command-line
// input.
//
// Matching stops at the first fatal condition with a [*usage.Error],
// or as early as possible with a [*usage.Request] when the help or
// version flag appears. Unknown names carry the closest declared
// spelling by edit distance as a suggestion.
//
// Key exports:
//
//   - [Run] -- match one argument vector
//   - [Result] -- matched path plus raw occurrences
package match
