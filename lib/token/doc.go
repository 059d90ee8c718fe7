// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package token splits a raw argument vector into a structured token
// stream: long flags, short-flag clusters, bare values, and the `--`
// terminator.
//
// The tokenizer is purely lexical. It does not know which flag names
// exist, which flags take values, or how short flags bundle; those
// decisions need the argument definitions and belong to the matcher.
// A short-flag token therefore carries its raw cluster body unsplit.
//
// Key exports:
//
//   - [Scan] -- returns a [Scanner] over an argv slice
//   - [Token] and [Kind] -- the tagged token representation
//
// This package depends on no other argsmith packages.
package token
