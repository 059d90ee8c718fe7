// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package usage

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/argsmith/argsmith/lib/argdef"
)

// Render writes scoped help or version text for a display request.
func Render(w io.Writer, tree *argdef.Tree, req *Request) {
	if req.Version {
		fmt.Fprintf(w, "%s %s\n", tree.Root().Name, tree.Version())
		return
	}
	RenderHelp(w, req.Command())
}

// RenderHelp writes structured help for one command: description,
// usage line, subcommand listing, flags, positionals, and examples.
func RenderHelp(w io.Writer, c *argdef.Command) {
	name := c.FullName()

	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	fmt.Fprintf(w, "Usage:\n  %s\n", usageLine(c))

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	var flags, positionals []*argdef.Argument
	for _, arg := range c.Visible() {
		if arg.Positional {
			positionals = append(positionals, arg)
		} else {
			flags = append(flags, arg)
		}
	}

	if len(positionals) > 0 {
		fmt.Fprintf(w, "\nArguments:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, arg := range positionals {
			fmt.Fprintf(tw, "  %s\t%s\n", positionalStub(arg), describe(arg))
		}
		tw.Flush()
	}

	if len(flags) > 0 {
		fmt.Fprintf(w, "\nFlags:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, arg := range flags {
			fmt.Fprintf(tw, "  %s\t%s\n", flagStub(arg), describe(arg))
		}
		tw.Flush()
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// RenderError writes a usage or value error with the standard footer
// pointing at --help.
func RenderError(w io.Writer, commandName string, err error) {
	fmt.Fprintf(w, "error: %v\n\nRun '%s --help' for usage.\n", err, commandName)
}

// usageLine synthesizes the usage string from the command shape.
func usageLine(c *argdef.Command) string {
	var b strings.Builder
	b.WriteString(c.FullName())
	if len(c.Subcommands) > 0 {
		b.WriteString(" <command>")
	}
	b.WriteString(" [flags]")
	for _, arg := range c.Positionals() {
		b.WriteByte(' ')
		b.WriteString(positionalStub(arg))
	}
	return b.String()
}

// positionalStub renders a positional for the usage line: <key>,
// [file], or [args...] for the trailing catch-all.
func positionalStub(arg *argdef.Argument) string {
	name := arg.Name
	if arg.Trailing || arg.Arity.Unbounded() {
		name += "..."
	}
	if arg.Required || arg.Arity.Min > 0 && !arg.Trailing {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}

// flagStub renders a flag's spellings and value placeholder:
// "-p, --port UINT".
func flagStub(arg *argdef.Argument) string {
	var b strings.Builder
	if arg.Short != 0 {
		fmt.Fprintf(&b, "-%c, ", arg.Short)
	} else {
		b.WriteString("    ")
	}
	b.WriteString("--")
	b.WriteString(arg.Name)
	if arg.Arity.Takes() {
		b.WriteByte(' ')
		b.WriteString(arg.Kind.Placeholder())
	}
	return b.String()
}

// describe renders the help column: help text plus default and env
// annotations.
func describe(arg *argdef.Argument) string {
	text := arg.Help
	var notes []string
	if arg.HasDefault {
		notes = append(notes, fmt.Sprintf("default: %s", arg.Default))
	}
	if arg.Env != "" {
		notes = append(notes, fmt.Sprintf("env: %s", arg.Env))
	}
	if arg.Required {
		notes = append(notes, "required")
	}
	if len(notes) > 0 {
		if text != "" {
			text += " "
		}
		text += "(" + strings.Join(notes, ", ") + ")"
	}
	return text
}
