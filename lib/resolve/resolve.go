// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/argsmith/argsmith/lib/argdef"
	"github.com/argsmith/argsmith/lib/confmap"
)

// Input is the raw command-line material from the matcher: literal
// occurrences per argument plus the presence set for zero-arity flags.
type Input struct {
	Occurrences map[*argdef.Argument][]string
	Present     map[*argdef.Argument]bool
}

// Options supplies the non-command-line sources. The engine never
// performs I/O itself: environment lookup is a function (defaulting to
// os.LookupEnv) and the config mapping is already parsed.
type Options struct {
	// LookupEnv reads a bound environment variable by exact,
	// case-sensitive name. Nil means os.LookupEnv.
	LookupEnv func(name string) (string, bool)

	// Config is the caller-supplied configuration mapping. Nil means
	// no configuration source.
	Config confmap.Map

	// Logger receives per-argument resolution traces. Nil disables.
	Logger *slog.Logger
}

// Merge resolves every argument declared along the matched path. The
// result covers each argument exactly once, in declaration order from
// the root down; absent optional arguments resolve to their type's
// absent representation with Absent provenance, never an error.
func Merge(path []*argdef.Command, cli Input, opts Options) (*argdef.ValueSet, error) {
	lookupEnv := opts.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Config scopes from the deepest subcommand outward: the most
	// specific scope that mentions a key wins.
	scopes := configScopes(path, opts.Config)

	var resolved []argdef.Resolved
	for _, command := range path {
		for _, arg := range command.Args {
			r, err := resolveOne(arg, cli, lookupEnv, scopes)
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", arg.DisplayName(), err)
			}
			logger.Debug("resolved argument",
				"arg", arg.Name, "provenance", r.Provenance.String())
			resolved = append(resolved, r)
		}
	}
	return argdef.NewValueSet(resolved), nil
}

// configScopes returns the nested config views along the command path,
// deepest first. Index 0 is the scope for the full subcommand path,
// the last element is the root mapping.
func configScopes(path []*argdef.Command, config confmap.Map) []confmap.Map {
	if config == nil {
		return nil
	}
	scopes := []confmap.Map{config}
	current := config
	for _, command := range path[1:] {
		current = current.Scoped(command.Name)
		scopes = append([]confmap.Map{current}, scopes...)
	}
	return scopes
}

// configLookup finds the key in the deepest scope that mentions it.
// The second result reports presence; the third reports the explicit
// null marker, which unsets every lower-priority source.
func configLookup(scopes []confmap.Map, key string) (any, bool, bool) {
	for _, scope := range scopes {
		if v, ok := scope.Lookup(key); ok {
			return v, true, v == nil
		}
	}
	return nil, false, false
}

func resolveOne(arg *argdef.Argument, cli Input, lookupEnv func(string) (string, bool), scopes []confmap.Map) (argdef.Resolved, error) {
	if arg.Multi() {
		return resolveMulti(arg, cli, lookupEnv, scopes)
	}
	return resolveScalar(arg, cli, lookupEnv, scopes)
}

// resolveScalar applies strict first-wins precedence for single-valued
// arguments, including presence flags.
func resolveScalar(arg *argdef.Argument, cli Input, lookupEnv func(string) (string, bool), scopes []confmap.Map) (argdef.Resolved, error) {
	// Command line. A presence flag has no literal; repeated value
	// occurrences keep the last one.
	if cli.Present[arg] {
		if !arg.Arity.Takes() {
			return argdef.Resolved{Arg: arg, Value: true, Provenance: argdef.CommandLine}, nil
		}
		occurrences := cli.Occurrences[arg]
		if len(occurrences) == 0 {
			// Optional-value flag typed without its value: present on
			// the command line, no literal to parse.
			return argdef.Resolved{Arg: arg, Provenance: argdef.CommandLine}, nil
		}
		parsed, err := arg.Kind.Parse(occurrences[len(occurrences)-1])
		if err != nil {
			return argdef.Resolved{}, err
		}
		return argdef.Resolved{Arg: arg, Value: parsed, Provenance: argdef.CommandLine}, nil
	}

	// Environment.
	if arg.Env != "" {
		if literal, ok := lookupEnv(arg.Env); ok {
			parsed, err := arg.Kind.Parse(literal)
			if err != nil {
				return argdef.Resolved{}, err
			}
			return argdef.Resolved{Arg: arg, Value: parsed, Provenance: argdef.Environment}, nil
		}
	}

	// Configuration mapping.
	if raw, present, isNull := configLookup(scopes, arg.Name); present {
		if isNull {
			// Explicit null: unset, and block the default too.
			return absent(arg), nil
		}
		parsed, err := arg.Kind.Parse(literalize(raw))
		if err != nil {
			return argdef.Resolved{}, err
		}
		return argdef.Resolved{Arg: arg, Value: parsed, Provenance: argdef.ConfigFile}, nil
	}

	// Declared default.
	if arg.HasDefault {
		parsed, err := arg.Kind.Parse(arg.Default)
		if err != nil {
			return argdef.Resolved{}, err
		}
		return argdef.Resolved{Arg: arg, Value: parsed, Provenance: argdef.Default}, nil
	}

	return absent(arg), nil
}

// resolveMulti handles multi-valued arguments. Without the append
// policy the highest-priority supplying source replaces the rest
// (whole-array replace); with it, every supplying source contributes
// in priority order and nothing is silently dropped.
func resolveMulti(arg *argdef.Argument, cli Input, lookupEnv func(string) (string, bool), scopes []confmap.Map) (argdef.Resolved, error) {
	var cliValues, envValues, configValues []any
	var configNull bool

	if cli.Present[arg] {
		for _, literal := range cli.Occurrences[arg] {
			parsed, err := arg.Kind.Parse(literal)
			if err != nil {
				return argdef.Resolved{}, err
			}
			cliValues = append(cliValues, parsed)
		}
	}

	if arg.Env != "" {
		if literal, ok := lookupEnv(arg.Env); ok {
			parsed, err := arg.Kind.Parse(literal)
			if err != nil {
				return argdef.Resolved{}, err
			}
			envValues = appendValue(envValues, parsed)
		}
	}

	if raw, present, isNull := configLookup(scopes, arg.Name); present {
		if isNull {
			configNull = true
		} else if list, ok := raw.([]any); ok {
			for _, elem := range list {
				parsed, err := arg.Kind.Parse(literalize(elem))
				if err != nil {
					return argdef.Resolved{}, err
				}
				configValues = append(configValues, parsed)
			}
		} else {
			parsed, err := arg.Kind.Parse(literalize(raw))
			if err != nil {
				return argdef.Resolved{}, err
			}
			configValues = appendValue(configValues, parsed)
		}
	}

	if arg.Append {
		merged := make([]any, 0, len(cliValues)+len(envValues)+len(configValues))
		merged = append(merged, cliValues...)
		merged = append(merged, envValues...)
		merged = append(merged, configValues...)
		if len(merged) > 0 {
			provenance := argdef.CommandLine
			switch {
			case len(cliValues) > 0:
				provenance = argdef.CommandLine
			case len(envValues) > 0:
				provenance = argdef.Environment
			default:
				provenance = argdef.ConfigFile
			}
			return argdef.Resolved{Arg: arg, Value: merged, Provenance: provenance}, nil
		}
		if cli.Present[arg] {
			return argdef.Resolved{Arg: arg, Value: []any{}, Provenance: argdef.CommandLine}, nil
		}
	} else {
		switch {
		case len(cliValues) > 0:
			return argdef.Resolved{Arg: arg, Value: cliValues, Provenance: argdef.CommandLine}, nil
		case cli.Present[arg]:
			// Typed with zero values; still the highest-priority
			// source, so it replaces the rest.
			return argdef.Resolved{Arg: arg, Value: []any{}, Provenance: argdef.CommandLine}, nil
		case len(envValues) > 0:
			return argdef.Resolved{Arg: arg, Value: envValues, Provenance: argdef.Environment}, nil
		case configNull:
			return absent(arg), nil
		case len(configValues) > 0:
			return argdef.Resolved{Arg: arg, Value: configValues, Provenance: argdef.ConfigFile}, nil
		}
	}

	if configNull {
		return absent(arg), nil
	}
	if arg.HasDefault {
		parsed, err := arg.Kind.Parse(arg.Default)
		if err != nil {
			return argdef.Resolved{}, err
		}
		return argdef.Resolved{Arg: arg, Value: appendValue(nil, parsed), Provenance: argdef.Default}, nil
	}
	return absent(arg), nil
}

// appendValue appends parsed to values, splicing parsed in when the
// kind itself yields a list (the delimiter-separated list type).
func appendValue(values []any, parsed any) []any {
	if list, ok := parsed.([]any); ok {
		return append(values, list...)
	}
	return append(values, parsed)
}

// absent is the type's defined absent representation: false for
// presence flags, nil otherwise.
func absent(arg *argdef.Argument) argdef.Resolved {
	if !arg.Arity.Takes() {
		return argdef.Resolved{Arg: arg, Value: false, Provenance: argdef.Absent}
	}
	return argdef.Resolved{Arg: arg, Provenance: argdef.Absent}
}

// literalize renders decoder-typed config scalars back to literal text
// so environment, config, and command-line values all pass through the
// same parser.
func literalize(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
