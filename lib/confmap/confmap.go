// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package confmap

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Map is an already-parsed nested key/value mapping. Values are
// scalars (string, bool, int64, uint64, float64), []any, nested Map
// values, or nil for an explicit absence marker.
type Map map[string]any

// Lookup returns the value for key and whether the key is present.
// A present key with a nil value reports ok with a nil value: that is
// the explicit absence marker, distinguishable from a missing key.
func (m Map) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Scoped descends into the nested maps named by path. Missing or
// non-map segments yield an empty view, never an error: a config file
// simply has nothing to say about that command.
func (m Map) Scoped(path ...string) Map {
	current := m
	for _, segment := range path {
		next, ok := current[segment]
		if !ok {
			return Map{}
		}
		child, ok := normalize(next).(Map)
		if !ok {
			return Map{}
		}
		current = child
	}
	return current
}

// IsNull reports whether key carries the explicit absence marker.
func (m Map) IsNull(key string) bool {
	v, ok := m[key]
	return ok && v == nil
}

// FromYAML parses a YAML document into a Map.
func FromYAML(data []byte) (Map, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}
	return normalizeMap(raw), nil
}

// FromJSONC parses JSON with comments and trailing commas into a Map.
func FromJSONC(data []byte) (Map, error) {
	var raw map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parse jsonc config: %w", err)
	}
	return normalizeMap(raw), nil
}

// FromTOML parses a TOML document into a Map. TOML has no null
// literal, so TOML configs cannot carry explicit absence markers.
func FromTOML(data []byte) (Map, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse toml config: %w", err)
	}
	return normalizeMap(raw), nil
}

// normalizeMap converts decoder output into a Map with nested Map
// values, whatever map flavor the decoder produced.
func normalizeMap(raw map[string]any) Map {
	out := make(Map, len(raw))
	for k, v := range raw {
		out[k] = normalize(v)
	}
	return out
}

// normalize recursively converts decoder-specific containers:
// map[string]any (json, yaml.v3, toml) and []any elements.
func normalize(v any) any {
	switch typed := v.(type) {
	case Map:
		return typed
	case map[string]any:
		return normalizeMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, elem := range typed {
			out[i] = normalize(elem)
		}
		return out
	default:
		return v
	}
}
