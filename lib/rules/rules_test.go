// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/bureau-foundation/massreplace/lib/palette"
)

func TestParse(t *testing.T) {
	want := []palette.Rule{
		{From: "minecraft:stone", To: "minecraft:granite"},
		{From: "minecraft:dirt", To: "minecraft:coarse_dirt"},
	}

	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `[
			{"from": "minecraft:stone", "to": "minecraft:granite"},
			{"from": "minecraft:dirt", "to": "minecraft:coarse_dirt"}
		]`},
		{"jsonc", FormatJSON, `[
			// Rock
			{"from": "minecraft:stone", "to": "minecraft:granite",},
			/* Soil */
			{"to": "minecraft:coarse_dirt", "from": "minecraft:dirt"},
		]`},
		{"yaml", FormatYAML, `
- from: minecraft:stone
  to: minecraft:granite
- {from: "minecraft:dirt", to: "minecraft:coarse_dirt"}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := Parse([]byte(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if !slices.Equal(rules, want) {
				t.Errorf("Parse = %+v, want %+v", rules, want)
			}
		})
	}
}

func TestParseMalformedEntriesAreInapplicable(t *testing.T) {
	input := `[
		null,
		{"from": "minecraft:stone"},
		{"from": 7, "to": "minecraft:granite"},
		"minecraft:stone",
		{"from": "minecraft:stone", "to": "minecraft:granite", "note": "kept"}
	]`
	rules, err := Parse([]byte(input), FormatJSON)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(rules) != 5 {
		t.Fatalf("got %d rules, want 5", len(rules))
	}
	for i, rule := range rules[:4] {
		if rule.Applicable() {
			t.Errorf("rule %d = %+v should be inapplicable", i, rule)
		}
	}
	if !rules[4].Applicable() {
		t.Errorf("rule 4 = %+v should be applicable", rules[4])
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"[]", "null"} {
		rules, err := Parse([]byte(input), FormatJSON)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", input, err)
		}
		if len(rules) != 0 {
			t.Errorf("Parse(%q) = %v, want no rules", input, rules)
		}
	}
}

func TestParseRejectsNonList(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json object", FormatJSON, `{"from": "a", "to": "b"}`},
		{"json syntax", FormatJSON, `[{"from": }]`},
		{"yaml mapping", FormatYAML, "from: a\nto: b\n"},
		{"unknown format", Format("toml"), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input), tt.format); err == nil {
				t.Error("Parse should fail")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	directory := t.TempDir()
	jsonPath := filepath.Join(directory, "blocks.json")
	yamlPath := filepath.Join(directory, "blocks.yml")
	if err := os.WriteFile(jsonPath, []byte(`[{"from":"a","to":"b"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("- from: a\n  to: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		rules, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", path, err)
		}
		if !slices.Equal(rules, []palette.Rule{{From: "a", To: "b"}}) {
			t.Errorf("Load(%s) = %+v", path, rules)
		}
	}

	if _, err := Load(filepath.Join(directory, "missing.json")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"blocks.json":  FormatJSON,
		"blocks.jsonc": FormatJSON,
		"rules.YAML":   FormatYAML,
		"rules.yml":    FormatYAML,
		"rules":        FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
