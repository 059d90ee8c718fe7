// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/argsmith/argsmith/lib/argdef"
	"github.com/argsmith/argsmith/lib/token"
	"github.com/argsmith/argsmith/lib/usage"
)

// Result is the raw outcome of matching one argument vector: the
// command path the stream selected and, per argument, the literal
// occurrences collected from the command line in input order.
type Result struct {
	// Path is the matched command chain from root to the deepest
	// subcommand the stream switched into.
	Path []*argdef.Command

	// Occurrences holds the raw literals per argument. Presence flags
	// have an entry in Present instead.
	Occurrences map[*argdef.Argument][]string

	// Present marks every argument matched on the command line,
	// including zero-arity flags that carry no literal.
	Present map[*argdef.Argument]bool
}

// Leaf returns the last command on the matched path.
func (r *Result) Leaf() *argdef.Command {
	return r.Path[len(r.Path)-1]
}

// Run matches argv against the tree. It returns a display request as
// soon as the help or version flag is seen, or a [*usage.Error] on the
// first fatal condition. logger may be nil.
func Run(tree *argdef.Tree, argv []string, logger *slog.Logger) (*Result, *usage.Request, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &matcher{
		tree:    tree,
		scanner: token.Scan(argv),
		node:    tree.Root(),
		logger:  logger,
		result: &Result{
			Path:        []*argdef.Command{tree.Root()},
			Occurrences: make(map[*argdef.Argument][]string),
			Present:     make(map[*argdef.Argument]bool),
		},
	}
	req, err := m.run()
	if req != nil || err != nil {
		return nil, req, err
	}
	return m.result, nil, nil
}

// matcher is the per-call state machine: current node, positional
// cursor, and the accumulator for an argument mid-consumption.
type matcher struct {
	tree    *argdef.Tree
	scanner *token.Scanner
	node    *argdef.Command
	logger  *slog.Logger
	result  *Result

	// cursor indexes the current node's declared positional order.
	cursor int

	// openPositional accumulates a multi-value positional across
	// subsequent value tokens; openCount is its occurrence tally.
	openPositional *argdef.Argument
	openCount      int

	// trailing, once set, swallows every remaining token.
	trailing *argdef.Argument
}

func (m *matcher) run() (*usage.Request, error) {
	for {
		tok, ok := m.scanner.Next()
		if !ok {
			break
		}
		if tok.Kind == token.Term {
			continue
		}
		if m.trailing != nil {
			m.record(m.trailing, rawText(tok))
			continue
		}

		var req *usage.Request
		var err error
		switch tok.Kind {
		case token.Long:
			req, err = m.longFlag(tok)
		case token.Short:
			req, err = m.shortCluster(tok)
		default:
			err = m.positional(tok)
		}
		if req != nil || err != nil {
			return req, err
		}
	}
	return nil, m.closeOpenPositional()
}

// longFlag resolves a --name token and consumes its values.
func (m *matcher) longFlag(tok token.Token) (*usage.Request, error) {
	arg, ok := m.node.LookupLong(tok.Name)
	if !ok {
		return nil, m.unknownFlag("--" + tok.Name)
	}
	if req := m.displayRequest(arg); req != nil {
		return req, nil
	}
	if err := m.closeOpenPositional(); err != nil {
		return nil, err
	}
	m.logger.Debug("matched long flag", "flag", arg.Name, "command", m.node.FullName())

	if !arg.Arity.Takes() {
		if tok.HasInline {
			return nil, &usage.Error{
				Kind:    usage.WrongArity,
				Command: m.node.FullName(),
				Subject: "--" + tok.Name,
				Detail:  "flag takes no value",
			}
		}
		m.present(arg)
		return nil, nil
	}

	count := 0
	if tok.HasInline {
		m.record(arg, tok.Text)
		count = 1
	}
	return nil, m.consumeValues(arg, "--"+tok.Name, count)
}

// shortCluster walks a -abc token: bundled zero-arity flags until one
// takes a value, which claims the rest of the cluster as its attached
// value (or starts greedy consumption when the cluster ends there).
func (m *matcher) shortCluster(tok token.Token) (*usage.Request, error) {
	// A token like --a lexes as a short cluster whose body starts with
	// a dash. No declarable flag can match it, so report the original
	// spelling rather than the dash rune.
	if strings.HasPrefix(tok.Name, "-") {
		return nil, m.unknownFlag(tok.String())
	}
	runes := []rune(tok.Name)
	for i := 0; i < len(runes); i++ {
		arg, ok := m.node.LookupShort(runes[i])
		if !ok {
			return nil, m.unknownFlag("-" + string(runes[i]))
		}
		if req := m.displayRequest(arg); req != nil {
			return req, nil
		}
		if err := m.closeOpenPositional(); err != nil {
			return nil, err
		}
		m.logger.Debug("matched short flag", "flag", arg.Name, "command", m.node.FullName())

		if !arg.Arity.Takes() {
			m.present(arg)
			continue
		}

		count := 0
		if rest := string(runes[i+1:]); rest != "" {
			m.record(arg, rest)
			count = 1
		}
		return nil, m.consumeValues(arg, "-"+string(runes[i]), count)
	}
	return nil, nil
}

// positional handles a bare value token: subcommand switch first, then
// assignment to the next positional slot.
func (m *matcher) positional(tok token.Token) error {
	// An open multi-value positional keeps consuming.
	if m.openPositional != nil && m.openPositional.Arity.Wants(m.openCount) {
		m.record(m.openPositional, tok.Text)
		m.openCount++
		return nil
	}
	if err := m.closeOpenPositional(); err != nil {
		return err
	}

	// Exact subcommand match switches permanently; the positional
	// cursor restarts in the child's scope.
	if !m.scanner.Terminated() {
		if sub, ok := m.node.Subcommand(tok.Text); ok {
			m.node = sub
			m.result.Path = append(m.result.Path, sub)
			m.cursor = 0
			m.logger.Debug("switched to subcommand", "command", sub.FullName())
			return nil
		}
	}

	positionals := m.node.Positionals()
	if m.cursor < len(positionals) {
		arg := positionals[m.cursor]
		if arg.Trailing {
			m.trailing = arg
			m.record(arg, tok.Text)
			m.logger.Debug("trailing catch-all active", "arg", arg.Name)
			return nil
		}
		m.record(arg, tok.Text)
		m.cursor++
		if arg.Arity.Wants(1) {
			m.openPositional = arg
			m.openCount = 1
		}
		return nil
	}

	if len(m.node.Subcommands) > 0 {
		names := make([]string, 0, len(m.node.Subcommands))
		for _, sub := range m.node.Subcommands {
			names = append(names, sub.Name)
		}
		return &usage.Error{
			Kind:       usage.InvalidSubcommand,
			Command:    m.node.FullName(),
			Subject:    tok.Text,
			Suggestion: suggest(tok.Text, names),
		}
	}

	return &usage.Error{
		Kind:    usage.UnknownArgument,
		Command: m.node.FullName(),
		Subject: tok.Text,
		Detail:  "unexpected positional value",
	}
}

// consumeValues greedily consumes value tokens for arg until its arity
// ceiling, a flag-looking token, the terminator, or the end of the
// stream, and enforces the arity floor. The flag counts as present
// even when an arity floor of zero lets it consume nothing.
func (m *matcher) consumeValues(arg *argdef.Argument, subject string, count int) error {
	m.present(arg)
	for arg.Arity.Wants(count) {
		next, ok := m.scanner.Peek()
		if !ok || next.Kind != token.Value {
			break
		}
		m.scanner.Next()
		m.record(arg, next.Text)
		count++
	}
	if !arg.Arity.Satisfied(count) {
		return &usage.Error{
			Kind:    usage.WrongArity,
			Command: m.node.FullName(),
			Subject: subject,
			Detail:  fmt.Sprintf("takes %s values, got %d", arg.Arity, count),
		}
	}
	return nil
}

// closeOpenPositional finishes the current multi-value positional and
// enforces its arity floor.
func (m *matcher) closeOpenPositional() error {
	if m.openPositional == nil {
		return nil
	}
	arg := m.openPositional
	count := m.openCount
	m.openPositional = nil
	m.openCount = 0
	if !arg.Arity.Satisfied(count) {
		return &usage.Error{
			Kind:    usage.WrongArity,
			Command: m.node.FullName(),
			Subject: arg.Name,
			Detail:  fmt.Sprintf("takes %s values, got %d", arg.Arity, count),
		}
	}
	return nil
}

// displayRequest recognizes the auto-registered help and version flags.
func (m *matcher) displayRequest(arg *argdef.Argument) *usage.Request {
	switch {
	case m.tree.IsHelp(arg):
		return &usage.Request{Path: m.result.Path}
	case m.tree.IsVersion(arg):
		return &usage.Request{Version: true, Path: m.result.Path}
	default:
		return nil
	}
}

// unknownFlag builds the UnknownArgument error with the closest
// declared spelling among the node's visible flag aliases.
func (m *matcher) unknownFlag(subject string) error {
	candidates := m.node.FlagAliases()
	return &usage.Error{
		Kind:       usage.UnknownArgument,
		Command:    m.node.FullName(),
		Subject:    subject,
		Suggestion: suggest(subject, candidates),
	}
}

// record stores one raw occurrence for arg.
func (m *matcher) record(arg *argdef.Argument, literal string) {
	m.result.Occurrences[arg] = append(m.result.Occurrences[arg], literal)
	m.result.Present[arg] = true
}

// present marks a zero-arity flag as matched.
func (m *matcher) present(arg *argdef.Argument) {
	m.result.Present[arg] = true
}

// rawText reconstructs the literal form of a token swallowed by the
// trailing catch-all, so "-v" and "--force" survive verbatim.
func rawText(tok token.Token) string {
	if tok.Kind == token.Value {
		return tok.Text
	}
	return tok.String()
}
