// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package usage holds the user-facing parse outcome vocabulary shared
// by the matcher, the constraint validator, and the router: the
// [Error] taxonomy for usage violations, the [Request] short-circuit
// signal for help and version output, and the text renderers that turn
// both into terminal output.
//
// Rendering is a collaborator concern: the engine only produces
// [Request] and [Error] values, and callers decide where and how to
// print them. [Render] writes tabwriter-aligned help in the
// conventional layout (description, usage line, commands, flags,
// examples); [ExitCode] maps an outcome to the usual process exit
// conventions.
//
// Key exports:
//
//   - [Error] and [Kind] -- structured usage violations
//   - [Request] -- help/version display signal (not an error)
//   - [Render], [RenderError] -- terminal output
//   - [ExitCode] -- 0 for success or display, 2 for usage errors
package usage
