// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine wires the pipeline together: tokenize, match, parse
// values, merge sources, validate constraints, and route to the
// matched leaf's handler.
//
// A [Parser] wraps one finalized tree with its external sources
// (environment lookup, config mapping). The tree is read-only, so a
// single Parser serves concurrent Parse calls; each call allocates its
// own matcher state and value set.
//
// [Parser.Parse] stops at the first usage or value violation and
// returns a result carrying a display request instead of values when
// the help or version flag was matched; that signal bypasses
// constraint validation and routing entirely. [Parser.Execute] adds
// the routing step: it renders display requests and dispatches the
// leaf handler with an [argdef.Invocation].
//
// Key exports:
//
//   - [New], [Parser.Parse], [Parser.Execute]
//   - [Result] -- matched path, values, or display request
//   - [Options] -- environment, config, logger, output
package engine
