// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package constraint checks cross-argument rules over the final merged
// values of one parse call: required presence, mutual exclusion,
// group rules, and dependencies.
//
// Validation runs after the precedence merge, so it sees genuinely
// final values with provenance: a requirement satisfied from the
// environment or a conflict introduced by a config file are treated
// exactly like their command-line equivalents. Checks run in
// declaration order along the matched path and stop at the first
// violation, so error messages are reproducible.
//
// Key exports:
//
//   - [Validate] -- the single post-merge validation pass
package constraint
