// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Package confmap is the configuration-mapping collaborator: a nested
// string-keyed map the precedence resolver consumes, plus loaders that
// materialize one from YAML, JSONC, or TOML text.
//
// The engine itself never reads files or parses serialization formats;
// callers load a [Map] up front and hand it to the resolver. Nested
// maps scope values per subcommand: the resolver looks an argument up
// in the deepest scope matching the command path and falls back
// outward.
//
// A key explicitly present with a nil value (YAML "key: null", JSON
// "null") is an explicit absence marker: it unsets values that lower
// priority sources would otherwise supply.
//
// Key exports:
//
//   - [Map] -- the nested mapping
//   - [FromYAML], [FromJSONC], [FromTOML] -- loaders
//   - [Map.Scoped] and [Map.Lookup] -- scoped access
package confmap
