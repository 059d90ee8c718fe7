// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package confmap_test

import (
	"testing"

	"github.com/argsmith/argsmith/lib/confmap"
)

func TestFromYAML(t *testing.T) {
	doc := []byte(`
port: 9000
verbose: true
serve:
  port: 7000
  tags:
    - a
    - b
proxy: null
`)
	m, err := confmap.FromYAML(doc)
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}

	if v, ok := m.Lookup("port"); !ok || v != 9000 {
		t.Errorf("Lookup(port) = %v, %v; want 9000", v, ok)
	}
	if !m.IsNull("proxy") {
		t.Error("IsNull(proxy) = false for explicit null")
	}
	if m.IsNull("port") {
		t.Error("IsNull(port) = true for a present value")
	}
	if m.IsNull("missing") {
		t.Error("IsNull(missing) = true for an absent key")
	}

	scoped := m.Scoped("serve")
	if v, ok := scoped.Lookup("port"); !ok || v != 7000 {
		t.Errorf("Scoped(serve).Lookup(port) = %v, %v; want 7000", v, ok)
	}
	if tags, ok := scoped.Lookup("tags"); !ok {
		t.Error("Scoped(serve) lost the tags list")
	} else if list, isList := tags.([]any); !isList || len(list) != 2 {
		t.Errorf("tags = %#v, want two-element list", tags)
	}
}

func TestFromJSONC(t *testing.T) {
	doc := []byte(`{
		// deployment target
		"host": "example.com",
		"port": 8443, // trailing comma tolerated below
		"features": {"cache": true,},
	}`)
	m, err := confmap.FromJSONC(doc)
	if err != nil {
		t.Fatalf("FromJSONC: %v", err)
	}
	if v, _ := m.Lookup("host"); v != "example.com" {
		t.Errorf("Lookup(host) = %v, want example.com", v)
	}
	if v, ok := m.Scoped("features").Lookup("cache"); !ok || v != true {
		t.Errorf("Scoped(features).Lookup(cache) = %v, %v; want true", v, ok)
	}
}

func TestFromTOML(t *testing.T) {
	doc := []byte(`
host = "localhost"

[database]
url = "postgres://localhost/app"
pool = 10
`)
	m, err := confmap.FromTOML(doc)
	if err != nil {
		t.Fatalf("FromTOML: %v", err)
	}
	if v, _ := m.Lookup("host"); v != "localhost" {
		t.Errorf("Lookup(host) = %v, want localhost", v)
	}
	if v, ok := m.Scoped("database").Lookup("pool"); !ok || v != int64(10) {
		t.Errorf("Scoped(database).Lookup(pool) = %v (%T), %v; want int64(10)", v, v, ok)
	}
}

func TestScopedMissingPath(t *testing.T) {
	m := confmap.Map{"a": confmap.Map{"b": 1}}

	if got := m.Scoped("nope"); len(got) != 0 {
		t.Errorf("Scoped(nope) = %v, want empty view", got)
	}
	// Descending through a scalar also yields the empty view.
	if got := m.Scoped("a", "b", "c"); len(got) != 0 {
		t.Errorf("Scoped through scalar = %v, want empty view", got)
	}
}

func TestFromYAMLRejectsNonMapping(t *testing.T) {
	if _, err := confmap.FromYAML([]byte(`- a list`)); err == nil {
		t.Error("FromYAML accepted a non-mapping document")
	}
}
