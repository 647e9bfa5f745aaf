// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rules loads block substitution rules from disk.
//
// A rules file (conventionally blocks.json) is a list of objects with
// "from" and "to" block names:
//
//	[
//	  {"from": "minecraft:stone", "to": "minecraft:granite"},
//	  // JSONC comments and trailing commas are accepted.
//	]
//
// Files ending in .yaml or .yml are read as YAML with the same shape;
// everything else is read as JSONC. Entries that are null, are not
// objects, or lack a string from/to load as empty rules, which the
// palette engine skips.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/massreplace/lib/palette"
)

// Format selects the syntax of a rules document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses a rules file.
func Load(path string) ([]palette.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	rules, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// Parse decodes a rules document. The order of the returned rules is
// the order of the document.
func Parse(data []byte, format Format) ([]palette.Rule, error) {
	var entries []any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(jsonc.ToJSON(data), &entries); err != nil {
			return nil, fmt.Errorf("parsing rules: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parsing rules: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown rules format %q", format)
	}

	rules := make([]palette.Rule, len(entries))
	for i, entry := range entries {
		object, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		rules[i].From, _ = object["from"].(string)
		rules[i].To, _ = object["to"].(string)
	}
	return rules, nil
}
