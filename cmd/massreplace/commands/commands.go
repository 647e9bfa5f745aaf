// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the massreplace command tree.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/massreplace/cmd/massreplace/cli"
	"github.com/bureau-foundation/massreplace/lib/version"
)

// Root builds the complete command tree. Command output other than
// logs and help is written to out.
func Root(out io.Writer) *cli.Command {
	return &cli.Command{
		Name: "massreplace",
		Description: `massreplace: bulk block replacement for world saves.

Rewrites the block palettes of every chunk in a world's region files
according to a list of from/to rules. Chunks that cannot be decoded are
carried over unchanged.`,
		Subcommands: []*cli.Command{
			replaceCommand(out),
			scanCommand(out),
			inspectCommand(out),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(context.Context, []string) error {
					_, err := fmt.Fprintf(out, "massreplace %s\n", version.Full())
					return err
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Copy a world and replace blocks in the copy",
				Command:     "massreplace replace --world saves/survival --out saves/converted --blocks blocks.json",
			},
			{
				Description: "Count what a rule file would change without writing",
				Command:     "massreplace scan --world saves/survival --blocks rules.yaml",
			},
			{
				Description: "Show the palette of one chunk",
				Command:     "massreplace inspect saves/survival/region/r.0.0.mca --chunk 3,7 --palette",
			},
		},
	}
}
