// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package value_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/argsmith/argsmith/lib/value"
)

func TestBuiltinTypes(t *testing.T) {
	tests := []struct {
		name    string
		typ     value.Type
		literal string
		want    any
		wantErr value.ErrorKind
		fails   bool
	}{
		{name: "string passthrough", typ: value.String(), literal: "hello", want: "hello"},
		{name: "string empty", typ: value.String(), literal: "", want: ""},

		{name: "bool true", typ: value.Bool(), literal: "true", want: true},
		{name: "bool numeric", typ: value.Bool(), literal: "1", want: true},
		{name: "bool garbage", typ: value.Bool(), literal: "yep", fails: true, wantErr: value.InvalidValue},

		{name: "int", typ: value.Int(), literal: "-42", want: int64(-42)},
		{name: "int garbage", typ: value.Int(), literal: "abc", fails: true, wantErr: value.InvalidValue},
		{name: "int range ok", typ: value.IntRange(1, 10), literal: "5", want: int64(5)},
		{name: "int range low", typ: value.IntRange(1, 10), literal: "0", fails: true, wantErr: value.OutOfRange},
		{name: "int range high", typ: value.IntRange(1, 10), literal: "11", fails: true, wantErr: value.OutOfRange},

		{name: "uint", typ: value.Uint(), literal: "7", want: uint64(7)},
		{name: "uint negative", typ: value.Uint(), literal: "-1", fails: true, wantErr: value.InvalidValue},
		{name: "port range ok", typ: value.UintRange(1, 65535), literal: "8080", want: uint64(8080)},
		{name: "port range zero", typ: value.UintRange(1, 65535), literal: "0", fails: true, wantErr: value.OutOfRange},

		{name: "float", typ: value.Float(), literal: "3.25", want: 3.25},
		{name: "float garbage", typ: value.Float(), literal: "x", fails: true, wantErr: value.InvalidValue},

		{name: "path cleaned", typ: value.Path(), literal: "a//b/../c", want: "a/c"},
		{name: "path empty", typ: value.Path(), literal: "", fails: true, wantErr: value.InvalidValue},

		{name: "enum match", typ: value.Enum("json", "yaml"), literal: "yaml", want: "yaml"},
		{name: "enum case sensitive", typ: value.Enum("json", "yaml"), literal: "YAML", fails: true, wantErr: value.UnknownEnumVariant},
		{name: "enum unknown", typ: value.Enum("json", "yaml"), literal: "toml", fails: true, wantErr: value.UnknownEnumVariant},

		{name: "list of ints", typ: value.List(",", value.Int()), literal: "1,2,3", want: []any{int64(1), int64(2), int64(3)}},
		{name: "list empty literal", typ: value.List(",", value.Int()), literal: "", want: []any{}},
		{name: "list bad element", typ: value.List(",", value.Int()), literal: "1,x", fails: true, wantErr: value.InvalidValue},

		{name: "key=value", typ: value.KeyValue(), literal: "k=v", want: value.Pair{Key: "k", Value: "v"}},
		{name: "key=value nested equals", typ: value.KeyValue(), literal: "k=a=b", want: value.Pair{Key: "k", Value: "a=b"}},
		{name: "key=value missing equals", typ: value.KeyValue(), literal: "kv", fails: true, wantErr: value.InvalidValue},
		{name: "key=value empty key", typ: value.KeyValue(), literal: "=v", fails: true, wantErr: value.InvalidValue},

		{name: "duration", typ: value.Duration(), literal: "1h30m", want: 90 * time.Minute},
		{name: "duration garbage", typ: value.Duration(), literal: "soon", fails: true, wantErr: value.InvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.typ.Parse(tt.literal)
			if tt.fails {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.literal, got)
				}
				var verr *value.Error
				if !errors.As(err, &verr) {
					t.Fatalf("Parse(%q) error is %T, want *value.Error", tt.literal, err)
				}
				if verr.Kind != tt.wantErr {
					t.Errorf("error kind = %v, want %v", verr.Kind, tt.wantErr)
				}
				if verr.Literal != tt.literal {
					t.Errorf("error literal = %q, want %q", verr.Literal, tt.literal)
				}
				if verr.Expected == "" {
					t.Error("error has empty expected-shape description")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.literal, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.literal, diff)
			}
		})
	}
}

func TestSemVer(t *testing.T) {
	typ := value.SemVer()

	got, err := typ.Parse("1.2.3")
	if err != nil {
		t.Fatalf("Parse(1.2.3): %v", err)
	}
	version, ok := got.(interface{ String() string })
	if !ok || version.String() != "1.2.3" {
		t.Errorf("parsed version = %v, want 1.2.3", got)
	}

	if _, err := typ.Parse("not-a-version"); err == nil {
		t.Error("Parse(not-a-version) succeeded, want error")
	}
	// Loose forms are rejected: the type is strict.
	if _, err := typ.Parse("v1.2"); err == nil {
		t.Error("Parse(v1.2) succeeded, want error")
	}
}

func TestUUID(t *testing.T) {
	typ := value.UUID()

	if _, err := typ.Parse("123e4567-e89b-12d3-a456-426614174000"); err != nil {
		t.Fatalf("Parse(canonical uuid): %v", err)
	}
	if _, err := typ.Parse("not-a-uuid"); err == nil {
		t.Error("Parse(not-a-uuid) succeeded, want error")
	}
}

func TestBoolIsFlag(t *testing.T) {
	if !value.Bool().IsFlag() {
		t.Error("Bool().IsFlag() = false, want true")
	}
	if value.String().IsFlag() {
		t.Error("String().IsFlag() = true, want false")
	}
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		typ  value.Type
		want string
	}{
		{value.Int(), "INT"},
		{value.IntRange(1, 5), "INT"},
		{value.Enum("a", "b"), "ENUM"},
		{value.Path(), "PATH"},
	}
	for _, tt := range tests {
		if got := tt.typ.Placeholder(); got != tt.want {
			t.Errorf("Placeholder(%s) = %q, want %q", tt.typ.Name(), got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	registry := value.NewRegistry()

	for _, name := range []string{"string", "bool", "int", "uint", "float", "path", "key=value", "duration", "semver", "uuid"} {
		if _, ok := registry.Lookup(name); !ok {
			t.Errorf("builtin %q missing from new registry", name)
		}
	}

	custom := value.Custom("hex", func(literal string) (any, error) {
		return literal, nil
	})
	if err := registry.Register(custom); err != nil {
		t.Fatalf("Register(hex): %v", err)
	}
	if _, ok := registry.Lookup("hex"); !ok {
		t.Error("custom type not found after Register")
	}

	if err := registry.Register(custom); err == nil {
		t.Error("duplicate Register succeeded, want error")
	}
	if err := registry.Register(value.Custom("", nil)); err == nil {
		t.Error("Register with empty name succeeded, want error")
	}
}
