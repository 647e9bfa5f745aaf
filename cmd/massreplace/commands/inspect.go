// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/massreplace/cmd/massreplace/cli"
	"github.com/bureau-foundation/massreplace/lib/codec"
	"github.com/bureau-foundation/massreplace/lib/nbt"
	"github.com/bureau-foundation/massreplace/lib/palette"
	"github.com/bureau-foundation/massreplace/lib/region"
	"github.com/bureau-foundation/massreplace/lib/report"
)

type inspectParams struct {
	Chunk   string `flag:"chunk" desc:"slot coordinates X,Z of one chunk in the region file"`
	Palette bool   `flag:"palette" desc:"print only the chunk's palette block names"`
	Raw     bool   `flag:"raw" desc:"print a report file as stored (CBOR in diagnostic notation)"`
}

func inspectCommand(out io.Writer) *cli.Command {
	var params inspectParams
	return &cli.Command{
		Name:    "inspect",
		Summary: "Print the contents of a region file or run report",
		Description: `Print a region file's slot table, one chunk's tree as SNBT, or one
chunk's palette names. Given a run report written by --report, print its
summary instead.`,
		Usage: "massreplace inspect FILE [flags]",
		Flags: func() *pflag.FlagSet {
			params = inspectParams{}
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("inspect takes exactly one file, got %d arguments", len(args))
			}
			path := args[0]
			if strings.HasSuffix(path, region.Extension) {
				return inspectRegion(out, path, params)
			}
			return inspectReport(out, path, params.Raw)
		},
	}
}

func inspectRegion(out io.Writer, path string, params inspectParams) error {
	container, err := region.Read(path, region.Options{})
	if err != nil {
		return err
	}
	if params.Chunk == "" {
		if params.Palette {
			return fmt.Errorf("--palette requires --chunk")
		}
		return printSlots(out, container)
	}

	x, z, err := parseSlot(params.Chunk)
	if err != nil {
		return err
	}
	chunk := container.Chunk(x, z)
	if chunk == nil {
		return fmt.Errorf("slot %d,%d of %s is empty", x, z, path)
	}
	if !chunk.Decoded() {
		return fmt.Errorf("slot %d,%d of %s: %w", x, z, path, chunk.Err)
	}
	if params.Palette {
		for _, name := range palette.Names(chunk.Root.Tag) {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return err
			}
		}
		return nil
	}
	_, err = fmt.Fprintln(out, nbt.SNBT(chunk.Root.Tag))
	return err
}

func printSlots(out io.Writer, container *region.Container) error {
	writer := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "SLOT\tCHUNK\tSECTORS\tSCHEME\tMODIFIED\tSTATUS")
	failed := 0
	for chunk := range container.Chunks() {
		chunkX, chunkZ := region.ChunkPos(container.RegionX, container.RegionZ, chunk.X, chunk.Z)
		status := "ok"
		if !chunk.Decoded() {
			failed++
			status = string(region.Classify(chunk.Err))
		}
		scheme := chunk.Scheme.String()
		if chunk.External {
			scheme += " (external)"
		}
		fmt.Fprintf(writer, "%d,%d\t%d,%d\t%s\t%s\t%s\t%s\n",
			chunk.X, chunk.Z, chunkX, chunkZ, chunk.Location, scheme,
			time.Unix(int64(chunk.Timestamp), 0).UTC().Format(time.RFC3339), status)
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d chunks, %d unreadable\n", container.Len(), failed)
	return err
}

// parseSlot parses "X,Z" slot coordinates.
func parseSlot(text string) (x, z int, err error) {
	xText, zText, ok := strings.Cut(text, ",")
	if ok {
		x, err = strconv.Atoi(strings.TrimSpace(xText))
	}
	if ok && err == nil {
		z, err = strconv.Atoi(strings.TrimSpace(zText))
	}
	if !ok || err != nil {
		return 0, 0, fmt.Errorf("--chunk must be X,Z, got %q", text)
	}
	if x < 0 || x >= region.GridSize || z < 0 || z >= region.GridSize {
		return 0, 0, fmt.Errorf("--chunk %d,%d is outside the %dx%d slot grid", x, z, region.GridSize, region.GridSize)
	}
	return x, z, nil
}

func inspectReport(out io.Writer, path string, raw bool) error {
	runReport, format, err := report.Read(path)
	if err != nil {
		return err
	}
	if !raw {
		return report.Render(out, runReport, cli.IsTerminal(out))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if format == report.FormatCBOR {
		notation, err := codec.Diagnose(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, notation)
		return err
	}
	_, err = out.Write(data)
	return err
}
