// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/argsmith/argsmith/lib/argdef"
	"github.com/argsmith/argsmith/lib/match"
	"github.com/argsmith/argsmith/lib/usage"
	"github.com/argsmith/argsmith/lib/value"
)

func nopHandler(context.Context, *argdef.Invocation) error { return nil }

// attachHandlers gives every leaf a no-op handler so the fixtures can
// focus on matching.
func attachHandlers(c *argdef.Command) {
	if len(c.Subcommands) == 0 {
		if c.Run == nil {
			c.Run = nopHandler
		}
		return
	}
	for _, sub := range c.Subcommands {
		attachHandlers(sub)
	}
}

func finalize(t *testing.T, root *argdef.Command) *argdef.Tree {
	t.Helper()
	attachHandlers(root)
	tree, err := argdef.NewBuilder(root).WithVersion("0.1.0").Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return tree
}

func lookup(t *testing.T, c *argdef.Command, name string) *argdef.Argument {
	t.Helper()
	arg, ok := c.LookupLong(name)
	if !ok {
		t.Fatalf("argument %q not declared on %s", name, c.FullName())
	}
	return arg
}

func pathNames(result *match.Result) []string {
	var names []string
	for _, c := range result.Path {
		names = append(names, c.Name)
	}
	return names
}

func TestSubcommandSwitchIsPermanent(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Subcommands: []*argdef.Command{
			{
				Name: "remote",
				Args: []*argdef.Argument{{Name: "name", Positional: true}},
				Subcommands: []*argdef.Command{
					{Name: "add", Args: []*argdef.Argument{
						{Name: "url", Positional: true},
					}},
				},
			},
		},
	}
	tree := finalize(t, root)

	// "add" matches the subcommand, so the positional on remote never
	// sees it; "origin" then lands on add's url slot.
	result, _, err := match.Run(tree, []string{"remote", "add", "origin"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"tool", "remote", "add"}, pathNames(result)); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	url := lookup(t, result.Leaf(), "url")
	if diff := cmp.Diff([]string{"origin"}, result.Occurrences[url]); diff != "" {
		t.Errorf("url occurrences mismatch (-want +got):\n%s", diff)
	}
}

func TestSubcommandWinsOverPositional(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "target", Positional: true},
		},
		Subcommands: []*argdef.Command{
			{Name: "build"},
		},
	}
	tree := finalize(t, root)

	// An exact subcommand name always wins over a positional slot.
	result, _, err := match.Run(tree, []string{"build"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := result.Leaf().Name; got != "build" {
		t.Errorf("leaf = %q, want build", got)
	}

	// A non-matching word falls through to the positional.
	result, _, err = match.Run(tree, []string{"docs"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	target := lookup(t, result.Leaf(), "target")
	if diff := cmp.Diff([]string{"docs"}, result.Occurrences[target]); diff != "" {
		t.Errorf("target occurrences mismatch (-want +got):\n%s", diff)
	}
}

func TestTerminatorDisablesSubcommands(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "target", Positional: true},
		},
		Subcommands: []*argdef.Command{
			{Name: "build"},
		},
	}
	tree := finalize(t, root)

	result, _, err := match.Run(tree, []string{"--", "build"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := result.Leaf().Name; got != "tool" {
		t.Errorf("leaf = %q, terminator must not switch subcommands", got)
	}
	target := lookup(t, result.Leaf(), "target")
	if diff := cmp.Diff([]string{"build"}, result.Occurrences[target]); diff != "" {
		t.Errorf("target occurrences mismatch (-want +got):\n%s", diff)
	}
}

func TestTerminatorStopsValueConsumption(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "include", Arity: argdef.ArityRange(1, 3)},
			{Name: "file", Positional: true},
		},
	}
	tree := finalize(t, root)

	result, _, err := match.Run(tree, []string{"--include", "a", "--", "b"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	include := lookup(t, result.Leaf(), "include")
	if diff := cmp.Diff([]string{"a"}, result.Occurrences[include]); diff != "" {
		t.Errorf("include stopped at the terminator (-want +got):\n%s", diff)
	}
	file := lookup(t, result.Leaf(), "file")
	if diff := cmp.Diff([]string{"b"}, result.Occurrences[file]); diff != "" {
		t.Errorf("post-terminator value goes to the positional (-want +got):\n%s", diff)
	}
}

func TestRepeatedFlagKeepsAllOccurrences(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "tag", Short: 't', Append: true},
		},
	}
	tree := finalize(t, root)

	result, _, err := match.Run(tree, []string{"-t", "a", "--tag", "b", "--tag=c"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	tag := lookup(t, result.Leaf(), "tag")
	if diff := cmp.Diff([]string{"a", "b", "c"}, result.Occurrences[tag]); diff != "" {
		t.Errorf("tag occurrences mismatch (-want +got):\n%s", diff)
	}
}

func TestInlineEmptyValueIsKept(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{{Name: "prefix"}},
	}
	tree := finalize(t, root)

	result, _, err := match.Run(tree, []string{"--prefix="}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	prefix := lookup(t, result.Leaf(), "prefix")
	if diff := cmp.Diff([]string{""}, result.Occurrences[prefix]); diff != "" {
		t.Errorf("empty inline value lost (-want +got):\n%s", diff)
	}
}

func TestFlagValueMayLookLikeNothingSpecial(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{{Name: "output", Short: 'o'}},
		Subcommands: []*argdef.Command{
			{Name: "build"},
		},
	}
	tree := finalize(t, root)

	// A value consumed by a flag never triggers a subcommand switch,
	// even when it spells one.
	result, _, err := match.Run(tree, []string{"--output", "build"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := result.Leaf().Name; got != "tool" {
		t.Errorf("leaf = %q, flag value must not switch subcommands", got)
	}
	output := lookup(t, result.Leaf(), "output")
	if diff := cmp.Diff([]string{"build"}, result.Occurrences[output]); diff != "" {
		t.Errorf("output occurrences mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobalFlagVisibleInSubcommand(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "verbose", Short: 'v', Kind: value.Bool(), Global: true},
		},
		Subcommands: []*argdef.Command{
			{Name: "build", Subcommands: []*argdef.Command{{Name: "docs"}}},
		},
	}
	tree := finalize(t, root)

	result, _, err := match.Run(tree, []string{"build", "docs", "-v"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	verbose, ok := tree.Root().LookupLong("verbose")
	if !ok {
		t.Fatal("verbose not declared on root")
	}
	if !result.Present[verbose] {
		t.Error("global flag not matched two levels down")
	}
}

func TestShortClusterStopsAtValueTaker(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "all", Short: 'a', Kind: value.Bool()},
			{Name: "number", Short: 'n'},
		},
	}
	tree := finalize(t, root)

	result, _, err := match.Run(tree, []string{"-an5"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	all := lookup(t, result.Leaf(), "all")
	if !result.Present[all] {
		t.Error("bundled -a not marked present")
	}
	number := lookup(t, result.Leaf(), "number")
	if diff := cmp.Diff([]string{"5"}, result.Occurrences[number]); diff != "" {
		t.Errorf("attached short value mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpBeatsErrorsSeenLater(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{{Name: "input", Positional: true, Required: true}},
	}
	tree := finalize(t, root)

	// The display request short-circuits before the unknown flag that
	// follows is ever examined.
	_, req, err := match.Run(tree, []string{"--help", "--no-such-flag"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if req == nil || req.Version {
		t.Fatalf("req = %+v, want help request", req)
	}
}

func TestVersionOnlyAtRoot(t *testing.T) {
	root := &argdef.Command{
		Name:        "tool",
		Subcommands: []*argdef.Command{{Name: "build"}},
	}
	tree := finalize(t, root)

	_, req, err := match.Run(tree, []string{"--version"}, nil)
	if err != nil {
		t.Fatalf("Run at root: %v", err)
	}
	if req == nil || !req.Version {
		t.Fatalf("req = %+v, want version request", req)
	}

	// The version flag is not global, so a subcommand rejects it.
	_, req, err = match.Run(tree, []string{"build", "--version"}, nil)
	if req != nil {
		t.Fatal("version request honored below the root")
	}
	var uerr *usage.Error
	if !errors.As(err, &uerr) || uerr.Kind != usage.UnknownArgument {
		t.Fatalf("Run error = %v, want UnknownArgument", err)
	}
}

func TestUnknownFlagErrors(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "force", Short: 'f', Kind: value.Bool()},
			{Name: "output", Short: 'o'},
		},
	}
	tree := finalize(t, root)

	tests := []struct {
		name       string
		argv       []string
		subject    string
		suggestion string
	}{
		{name: "misspelled long", argv: []string{"--forse"}, subject: "--forse", suggestion: "--force"},
		{name: "unrelated long", argv: []string{"--completely-different"}, subject: "--completely-different"},
		{name: "unknown short", argv: []string{"-z"}, subject: "-z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := match.Run(tree, tt.argv, nil)
			var uerr *usage.Error
			if !errors.As(err, &uerr) {
				t.Fatalf("Run error = %v, want *usage.Error", err)
			}
			if uerr.Kind != usage.UnknownArgument {
				t.Errorf("kind = %v, want UnknownArgument", uerr.Kind)
			}
			if uerr.Subject != tt.subject {
				t.Errorf("subject = %q, want %q", uerr.Subject, tt.subject)
			}
			if tt.suggestion != "" && uerr.Suggestion != tt.suggestion {
				t.Errorf("suggestion = %q, want %q", uerr.Suggestion, tt.suggestion)
			}
		})
	}
}

func TestMultiValuePositionalArityFloor(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "pair", Positional: true, Arity: argdef.ArityExact(2)},
		},
	}
	tree := finalize(t, root)

	_, _, err := match.Run(tree, []string{"only-one"}, nil)
	var uerr *usage.Error
	if !errors.As(err, &uerr) || uerr.Kind != usage.WrongArity {
		t.Fatalf("Run error = %v, want WrongArity", err)
	}

	result, _, err := match.Run(tree, []string{"one", "two"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	pair := lookup(t, result.Leaf(), "pair")
	if diff := cmp.Diff([]string{"one", "two"}, result.Occurrences[pair]); diff != "" {
		t.Errorf("pair occurrences mismatch (-want +got):\n%s", diff)
	}
}

func TestFlagClosesOpenPositional(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "files", Positional: true, Arity: argdef.ArityRange(2, 4)},
			{Name: "dry-run", Kind: value.Bool()},
		},
	}
	tree := finalize(t, root)

	// The flag interrupts the open positional before its floor is met.
	_, _, err := match.Run(tree, []string{"a", "--dry-run"}, nil)
	var uerr *usage.Error
	if !errors.As(err, &uerr) || uerr.Kind != usage.WrongArity {
		t.Fatalf("Run error = %v, want WrongArity", err)
	}
	if uerr.Subject != "files" {
		t.Errorf("subject = %q, want files", uerr.Subject)
	}
}

func TestExtraPositionalRejected(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "src", Positional: true},
		},
	}
	tree := finalize(t, root)

	_, _, err := match.Run(tree, []string{"a", "b"}, nil)
	var uerr *usage.Error
	if !errors.As(err, &uerr) || uerr.Kind != usage.UnknownArgument {
		t.Fatalf("Run error = %v, want UnknownArgument", err)
	}
	if uerr.Subject != "b" {
		t.Errorf("subject = %q, want b", uerr.Subject)
	}
}

func TestOptionalValueFlagPresence(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "color", Arity: argdef.ArityRange(0, 1)},
		},
	}
	tree := finalize(t, root)

	t.Run("no value", func(t *testing.T) {
		result, _, err := match.Run(tree, []string{"--color"}, nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		color := lookup(t, result.Leaf(), "color")
		if !result.Present[color] {
			t.Error("flag with an arity floor of zero not marked present")
		}
		if got := result.Occurrences[color]; len(got) != 0 {
			t.Errorf("occurrences = %v, want none", got)
		}
	})

	t.Run("with value", func(t *testing.T) {
		result, _, err := match.Run(tree, []string{"--color", "always"}, nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		color := lookup(t, result.Leaf(), "color")
		if !result.Present[color] {
			t.Error("flag not marked present")
		}
		if diff := cmp.Diff([]string{"always"}, result.Occurrences[color]); diff != "" {
			t.Errorf("color occurrences mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestDoubleDashSingleCharacter(t *testing.T) {
	root := &argdef.Command{
		Name: "tool",
		Args: []*argdef.Argument{
			{Name: "alpha", Short: 'a', Kind: value.Bool()},
		},
	}
	tree := finalize(t, root)

	// --a is neither the long flag --alpha nor the short flag -a; the
	// error reports the spelling the user typed.
	_, _, err := match.Run(tree, []string{"--a"}, nil)
	var uerr *usage.Error
	if !errors.As(err, &uerr) || uerr.Kind != usage.UnknownArgument {
		t.Fatalf("Run error = %v, want UnknownArgument", err)
	}
	if uerr.Subject != "--a" {
		t.Errorf("subject = %q, want --a", uerr.Subject)
	}
}

func TestEmptyArgvMatchesRoot(t *testing.T) {
	root := &argdef.Command{Name: "tool"}
	tree := finalize(t, root)

	result, _, err := match.Run(tree, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"tool"}, pathNames(result)); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if len(result.Occurrences) != 0 || len(result.Present) != 0 {
		t.Error("empty argv produced occurrences")
	}
}
