// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// ParseFunc converts a literal into a typed value. Implementations must
// be pure: same literal in, same value out, no I/O and no shared state.
type ParseFunc func(literal string) (any, error)

// Type is a value-kind descriptor: a name for registry lookup and help
// placeholders, plus the conversion function applied to each raw
// occurrence of an argument.
type Type struct {
	name  string
	parse ParseFunc
	flag  bool
}

// Name returns the descriptor name (e.g. "int", "enum[json|yaml]").
func (t Type) Name() string { return t.name }

// Parse applies the conversion function to literal.
func (t Type) Parse(literal string) (any, error) {
	if t.parse == nil {
		return nil, fmt.Errorf("value type %q has no parser", t.name)
	}
	return t.parse(literal)
}

// IsFlag reports whether the type is presence-only: matched on the
// command line it consumes no following token. Environment and config
// sources still supply literals ("true", "1") which Parse accepts.
func (t Type) IsFlag() bool { return t.flag }

// IsZero reports whether the descriptor is the unset zero value.
func (t Type) IsZero() bool { return t.name == "" && t.parse == nil }

// Placeholder returns the descriptor name upper-cased for usage lines,
// e.g. "--port INT".
func (t Type) Placeholder() string {
	name := t.name
	if cut := strings.IndexByte(name, '['); cut >= 0 {
		name = name[:cut]
	}
	return strings.ToUpper(name)
}

// Pair is the result of the key=value type.
type Pair struct {
	Key   string
	Value string
}

// String renders the pair back to its literal form.
func (p Pair) String() string { return p.Key + "=" + p.Value }

// Custom wraps an application-supplied parse function under a chosen
// descriptor name. The rest of the engine treats it exactly like a
// builtin.
func Custom(name string, parse ParseFunc) Type {
	return Type{name: name, parse: parse}
}

// String accepts any UTF-8 literal unchanged.
func String() Type {
	return Type{name: "string", parse: func(literal string) (any, error) {
		return literal, nil
	}}
}

// Bool is the presence-only flag type. On the command line presence
// alone sets it true; environment and config sources supply a boolean
// literal instead.
func Bool() Type {
	return Type{name: "bool", flag: true, parse: func(literal string) (any, error) {
		parsed, err := strconv.ParseBool(literal)
		if err != nil {
			return nil, invalid(literal, "a boolean (true/false/1/0)")
		}
		return parsed, nil
	}}
}

// Int accepts any signed 64-bit integer.
func Int() Type {
	typ := IntRange(0, 0)
	typ.name = "int"
	return typ
}

// IntRange accepts a signed integer within the closed range [lo, hi].
// IntRange(0, 0) with lo == hi == 0 is unbounded (used by [Int]).
func IntRange(lo, hi int64) Type {
	bounded := lo != 0 || hi != 0
	name := "int"
	if bounded {
		name = fmt.Sprintf("int[%d..%d]", lo, hi)
	}
	return Type{name: name, parse: func(literal string) (any, error) {
		parsed, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, invalid(literal, "an integer")
		}
		if bounded && (parsed < lo || parsed > hi) {
			return nil, &Error{
				Kind:     OutOfRange,
				Literal:  literal,
				Expected: fmt.Sprintf("an integer between %d and %d", lo, hi),
			}
		}
		return parsed, nil
	}}
}

// Uint accepts any unsigned 64-bit integer.
func Uint() Type {
	typ := UintRange(0, 0)
	typ.name = "uint"
	return typ
}

// UintRange accepts an unsigned integer within the closed range
// [lo, hi]. UintRange(0, 0) is unbounded (used by [Uint]).
func UintRange(lo, hi uint64) Type {
	bounded := lo != 0 || hi != 0
	name := "uint"
	if bounded {
		name = fmt.Sprintf("uint[%d..%d]", lo, hi)
	}
	return Type{name: name, parse: func(literal string) (any, error) {
		parsed, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return nil, invalid(literal, "an unsigned integer")
		}
		if bounded && (parsed < lo || parsed > hi) {
			return nil, &Error{
				Kind:     OutOfRange,
				Literal:  literal,
				Expected: fmt.Sprintf("an unsigned integer between %d and %d", lo, hi),
			}
		}
		return parsed, nil
	}}
}

// Float accepts a 64-bit floating point literal.
func Float() Type {
	return Type{name: "float", parse: func(literal string) (any, error) {
		parsed, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, invalid(literal, "a floating point number")
		}
		return parsed, nil
	}}
}

// Path accepts a filesystem path. The check is purely syntactic: the
// path is cleaned but never touched on disk, so nonexistent paths are
// fine and existence checks belong to the handler.
func Path() Type {
	return Type{name: "path", parse: func(literal string) (any, error) {
		if literal == "" {
			return nil, invalid(literal, "a non-empty filesystem path")
		}
		return filepath.Clean(literal), nil
	}}
}

// Enum accepts exactly one of the given variants, case-sensitively.
func Enum(variants ...string) Type {
	allowed := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		allowed[v] = struct{}{}
	}
	name := "enum[" + strings.Join(variants, "|") + "]"
	return Type{name: name, parse: func(literal string) (any, error) {
		if _, ok := allowed[literal]; !ok {
			return nil, &Error{
				Kind:     UnknownEnumVariant,
				Literal:  literal,
				Expected: "one of " + strings.Join(variants, ", "),
			}
		}
		return literal, nil
	}}
}

// List splits the literal on sep and applies elem to every piece,
// returning a []any in input order. An empty literal is an empty list.
func List(sep string, elem Type) Type {
	name := "list[" + elem.name + "]"
	return Type{name: name, parse: func(literal string) (any, error) {
		if literal == "" {
			return []any{}, nil
		}
		pieces := strings.Split(literal, sep)
		out := make([]any, 0, len(pieces))
		for _, piece := range pieces {
			parsed, err := elem.Parse(piece)
			if err != nil {
				return nil, err
			}
			out = append(out, parsed)
		}
		return out, nil
	}}
}

// KeyValue splits the literal once on the first "=" into a [Pair].
// The value half may itself contain "=" characters.
func KeyValue() Type {
	return Type{name: "key=value", parse: func(literal string) (any, error) {
		key, val, found := strings.Cut(literal, "=")
		if !found || key == "" {
			return nil, invalid(literal, "KEY=VALUE")
		}
		return Pair{Key: key, Value: val}, nil
	}}
}

// Duration accepts a Go duration literal such as "250ms" or "1h30m".
func Duration() Type {
	return Type{name: "duration", parse: func(literal string) (any, error) {
		parsed, err := time.ParseDuration(literal)
		if err != nil {
			return nil, invalid(literal, `a duration like "30s" or "1h30m"`)
		}
		return parsed, nil
	}}
}

// SemVer accepts a strict semantic version ("1.2.3", "2.0.0-rc.1")
// and yields a *semver.Version.
func SemVer() Type {
	return Type{name: "semver", parse: func(literal string) (any, error) {
		parsed, err := semver.StrictNewVersion(literal)
		if err != nil {
			return nil, invalid(literal, "a semantic version like 1.2.3")
		}
		return parsed, nil
	}}
}

// UUID accepts an RFC 4122 UUID in its canonical text form.
func UUID() Type {
	return Type{name: "uuid", parse: func(literal string) (any, error) {
		parsed, err := uuid.Parse(literal)
		if err != nil {
			return nil, invalid(literal, "a UUID like 123e4567-e89b-12d3-a456-426614174000")
		}
		return parsed, nil
	}}
}
