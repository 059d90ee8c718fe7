// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package argdef is the definition model: a declarative tree of
// commands, subcommands, typed arguments, and argument groups.
//
// Trees are built as nested [Command] literals, the handler attached
// on each leaf's Run field, and then validated in a single pass by
// [Builder.Finalize]. Finalize collects every definition problem into
// one [*BuildError] batch (duplicate names, dangling group
// references, leaves without handlers, impossible constraint
// combinations) so all problems are visible at once, never one at a
// time during parsing.
//
// A finalized [Tree] is immutable and safe to share across any number
// of concurrent parse calls. Global arguments propagate to descendant
// commands by pointer: children reference the ancestor's Argument,
// nothing is copied.
//
// The package also owns the per-parse result vocabulary: [Resolved]
// values with [Provenance] tags, the [ValueSet] handed to handlers,
// and the [Invocation] execution context. These are data model types
// shared by the matcher, resolver, and router.
//
// Key exports:
//
//   - [Command], [Argument], [Group], [Arity] -- the declarative tree
//   - [Builder] and [Builder.Finalize] -- one-shot validation
//   - [Tree] -- the immutable, finalized model
//   - [BuildError] -- batched definition problems
//   - [ValueSet], [Resolved], [Provenance], [Invocation], [Handler]
package argdef
