// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
)

type sharedParams struct {
	Verbose bool `flag:"verbose,v" desc:"enable debug logging"`
}

type testParams struct {
	sharedParams
	World   string `flag:"world" desc:"world directory"`
	Blocks  string `flag:"blocks" desc:"rule file" default:"blocks.json"`
	Workers int    `flag:"workers" desc:"concurrent files" default:"4"`
	DryRun  bool   `flag:"dry-run" desc:"count only" default:"false"`
	ignored string
}

func TestFlagsFromParams(t *testing.T) {
	var params testParams
	flagSet := FlagsFromParams("test", &params)

	if err := flagSet.Parse([]string{"--world", "/saves/a", "-v", "--workers=8", "extra"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.World != "/saves/a" {
		t.Errorf("World = %q", params.World)
	}
	if params.Blocks != "blocks.json" {
		t.Errorf("Blocks default = %q", params.Blocks)
	}
	if params.Workers != 8 {
		t.Errorf("Workers = %d", params.Workers)
	}
	if !params.Verbose {
		t.Error("embedded Verbose flag not bound")
	}
	if params.DryRun {
		t.Error("DryRun should default to false")
	}
	if args := flagSet.Args(); len(args) != 1 || args[0] != "extra" {
		t.Errorf("Args = %v", args)
	}
	if flagSet.Lookup("ignored") != nil {
		t.Error("untagged field should not become a flag")
	}
	if flag := flagSet.Lookup("workers"); flag == nil || flag.Usage != "concurrent files" {
		t.Errorf("workers flag = %+v", flag)
	}
}

func TestBindFlagsErrors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", testParams{}, "pointer to a struct"},
		{"pointer to non-struct", new(int), "pointer to a struct"},
		{"bad int default", &struct {
			N int `flag:"n" default:"many"`
		}{}, "default for --n"},
		{"bad bool default", &struct {
			B bool `flag:"b" default:"perhaps"`
		}{}, "default for --b"},
		{"unsupported type", &struct {
			F float32 `flag:"f"`
		}{}, "unsupported type"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, FlagsFromParams("empty", &struct{}{}))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("BindFlags error = %v, want containing %q", err, test.want)
			}
		})
	}
}

func TestAliases(t *testing.T) {
	var params testParams
	flagSet := FlagsFromParams("test", &params)
	flagSet.SetNormalizeFunc(Aliases(map[string]string{"world_dir": "world", "blocks_file": "blocks"}))

	if err := flagSet.Parse([]string{"--world_dir", "/legacy", "--blocks_file=old.json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if params.World != "/legacy" || params.Blocks != "old.json" {
		t.Errorf("aliases not applied: %+v", params)
	}
	if !flagSet.Changed("world") {
		t.Error("Changed(world) = false after --world_dir")
	}
}
