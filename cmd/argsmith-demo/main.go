// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

// Command argsmith-demo is a small application exercising the whole
// pipeline: nested subcommands, typed flags, environment binding,
// layered configuration files, and conventional exit codes.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/argsmith/argsmith/lib/argdef"
	"github.com/argsmith/argsmith/lib/confmap"
	"github.com/argsmith/argsmith/lib/engine"
	"github.com/argsmith/argsmith/lib/usage"
	"github.com/argsmith/argsmith/lib/value"
)

const demoVersion = "0.3.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	tree, err := buildTree()
	if err != nil {
		fmt.Fprintf(os.Stderr, "argsmith-demo: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose(argv) {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	config, err := loadConfig(argv)
	if err != nil {
		printError(tree.Root().Name, err)
		return 2
	}

	parser := engine.New(tree, engine.Options{
		Config: config,
		Logger: logger,
	})
	if err := parser.Execute(context.Background(), argv); err != nil {
		printError(tree.Root().Name, err)
		return engine.ExitCode(err)
	}
	return 0
}

func buildTree() (*argdef.Tree, error) {
	root := &argdef.Command{
		Name:    "argsmith-demo",
		Summary: "argument resolution demo",
		Description: "Demonstrates layered value resolution: command line over\n" +
			"environment over configuration file over declared defaults.",
		Args: []*argdef.Argument{
			{Name: "verbose", Short: 'v', Kind: value.Bool(), Global: true, Help: "debug logging"},
			{Name: "config", Short: 'c', Kind: value.Path(), Global: true, Help: "configuration file (yaml, json, jsonc, or toml)"},
		},
		Subcommands: []*argdef.Command{
			{
				Name:    "serve",
				Summary: "start the demo server",
				Args: []*argdef.Argument{
					{Name: "port", Short: 'p', Kind: value.UintRange(1, 65535), Default: "3000", HasDefault: true, Env: "PORT", Help: "listen port"},
					{Name: "host", Default: "localhost", HasDefault: true, Env: "HOST", Help: "listen address"},
					{Name: "header", Kind: value.KeyValue(), Append: true, Help: "extra response header, repeatable"},
				},
				Examples: []argdef.Example{
					{Description: "listen on port 8080", Command: "argsmith-demo serve --port 8080"},
					{Description: "port from the environment", Command: "PORT=9000 argsmith-demo serve"},
				},
				Run: runServe,
			},
			{
				Name:    "config",
				Summary: "inspect resolved configuration",
				Subcommands: []*argdef.Command{
					{
						Name:    "get",
						Summary: "print one configuration value",
						Args: []*argdef.Argument{
							{Name: "key", Positional: true, Required: true, Help: "dotted key path"},
						},
						Run: runConfigGet,
					},
					{
						Name:    "set",
						Summary: "print the pair that would be written",
						Args: []*argdef.Argument{
							{Name: "key", Positional: true, Required: true, Help: "dotted key path"},
							{Name: "value", Positional: true, Required: true, Help: "new value"},
						},
						Run: runConfigSet,
					},
				},
			},
		},
	}
	return argdef.NewBuilder(root).WithVersion(demoVersion).Finalize()
}

func runServe(ctx context.Context, inv *argdef.Invocation) error {
	host := inv.Values.String("host")
	port := inv.Values.Uint("port")
	fmt.Printf("listening on %s:%d (port via %s)\n", host, port, inv.Values.Provenance("port"))
	for _, raw := range inv.Values.Slice("header") {
		if pair, ok := raw.(value.Pair); ok {
			fmt.Printf("header %s: %s\n", pair.Key, pair.Value)
		}
	}
	return nil
}

func runConfigGet(ctx context.Context, inv *argdef.Invocation) error {
	key := inv.Values.String("key")
	fmt.Printf("get %s\n", key)
	return nil
}

func runConfigSet(ctx context.Context, inv *argdef.Invocation) error {
	fmt.Printf("set %s=%s\n", inv.Values.String("key"), inv.Values.String("value"))
	return nil
}

// loadConfig reads the file named by --config/-c before the real parse
// runs, so the parse itself can already see the configuration layer.
// The loader is chosen by file extension.
func loadConfig(argv []string) (confmap.Map, error) {
	path := configPath(argv)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return confmap.FromYAML(data)
	case ".json", ".jsonc":
		return confmap.FromJSONC(data)
	case ".toml":
		return confmap.FromTOML(data)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension", path)
	}
}

// configPath scans argv for --config without a full parse. This peek
// is deliberately simple: it understands the separated, inline, and
// attached spellings and stops at the terminator.
func configPath(argv []string) string {
	for i, arg := range argv {
		switch {
		case arg == "--":
			return ""
		case arg == "--config" || arg == "-c":
			if i+1 < len(argv) {
				return argv[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c") && len(arg) > 2:
			return arg[2:]
		}
	}
	return ""
}

// verbose mirrors configPath: a cheap pre-parse peek at the global
// debug flag so logger construction can precede the real parse.
func verbose(argv []string) bool {
	for _, arg := range argv {
		if arg == "--" {
			return false
		}
		if arg == "--verbose" || arg == "-v" {
			return true
		}
	}
	return false
}

func printError(commandName string, err error) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, "%v\n", err)
	if usage.ExitCode(err) == 2 {
		fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", commandName)
	}
}
