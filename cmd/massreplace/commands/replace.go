// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/massreplace/cmd/massreplace/cli"
	"github.com/bureau-foundation/massreplace/lib/clock"
	"github.com/bureau-foundation/massreplace/lib/config"
	"github.com/bureau-foundation/massreplace/lib/report"
	"github.com/bureau-foundation/massreplace/lib/replacer"
	"github.com/bureau-foundation/massreplace/lib/rules"
	"github.com/bureau-foundation/massreplace/lib/world"
)

// legacyFlags maps the underscore spellings older scripts pass to the
// current flag names.
var legacyFlags = map[string]string{
	"world_dir":   "world",
	"output_dir":  "out",
	"blocks_file": "blocks",
}

// runParams are the flags shared by replace and scan.
type runParams struct {
	Config       string `flag:"config" desc:"configuration file (default $MASSREPLACE_CONFIG)"`
	World        string `flag:"world" desc:"world save directory to read"`
	Blocks       string `flag:"blocks" desc:"rule file: JSON, JSONC or YAML list of {from, to}" default:"blocks.json"`
	Workers      int    `flag:"workers" desc:"region files processed concurrently (0 means one per CPU)"`
	Report       string `flag:"report" desc:"write a run report to this path"`
	ReportFormat string `flag:"report-format" desc:"run report format: json or cbor" default:"json"`
	Verbose      bool   `flag:"verbose,v" desc:"enable debug logging"`
}

type replaceParams struct {
	runParams
	Out     string `flag:"out" desc:"directory the world is copied to before replacement"`
	InPlace bool   `flag:"in-place" desc:"rewrite the world directly instead of a copy"`
	DryRun  bool   `flag:"dry-run" desc:"count matches without copying or writing anything"`
}

func replaceCommand(out io.Writer) *cli.Command {
	var params replaceParams
	var flagSet *pflag.FlagSet
	return &cli.Command{
		Name:    "replace",
		Summary: "Replace blocks in a copy of a world",
		Description: `Copy a world save to --out, then rewrite the block palettes of every
region file in the copy using the rules in --blocks. With --in-place the
world is rewritten directly. Region files that fail are reported and the
command exits 1 after the whole world has been processed.`,
		Usage: "massreplace replace --world DIR (--out DIR | --in-place) [flags]",
		Flags: func() *pflag.FlagSet {
			params = replaceParams{}
			flagSet = cli.FlagsFromParams("replace", &params)
			flagSet.SetNormalizeFunc(cli.Aliases(legacyFlags))
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			cfg, err := params.load(flagSet)
			if err != nil {
				return err
			}
			if flagSet.Changed("out") {
				cfg.Output = params.Out
			}
			if flagSet.Changed("in-place") {
				cfg.InPlace = params.InPlace
			}
			if flagSet.Changed("dry-run") {
				cfg.DryRun = params.DryRun
			}
			return execute(ctx, out, cfg, params.Verbose)
		},
	}
}

func scanCommand(out io.Writer) *cli.Command {
	var params runParams
	var flagSet *pflag.FlagSet
	return &cli.Command{
		Name:    "scan",
		Summary: "Count the entries a rule file would replace",
		Description: `Apply the rules in --blocks to every region file of --world in memory
and print what would change. Nothing is copied or written.`,
		Usage: "massreplace scan --world DIR [flags]",
		Flags: func() *pflag.FlagSet {
			params = runParams{}
			flagSet = cli.FlagsFromParams("scan", &params)
			flagSet.SetNormalizeFunc(cli.Aliases(legacyFlags))
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			cfg, err := params.load(flagSet)
			if err != nil {
				return err
			}
			cfg.DryRun = true
			cfg.InPlace = false
			cfg.Output = ""
			return execute(ctx, out, cfg, params.Verbose)
		},
	}
}

// load builds the configuration: defaults, then the config file if one
// is named, then every flag given explicitly.
func (p *runParams) load(flagSet *pflag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.Config != "":
		cfg, err = config.LoadFile(p.Config)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if flagSet.Changed("world") {
		cfg.World = p.World
	}
	if flagSet.Changed("blocks") {
		cfg.Rules = p.Blocks
	}
	if flagSet.Changed("workers") {
		cfg.Workers = p.Workers
	}
	if flagSet.Changed("report") {
		cfg.Report.Path = p.Report
	}
	if flagSet.Changed("report-format") {
		cfg.Report.Format = p.ReportFormat
	}
	if p.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// execute runs one replacement described by cfg and prints its summary.
func execute(ctx context.Context, out io.Writer, cfg *config.Config, verbose bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(level)

	ruleList, err := rules.Load(cfg.Rules)
	if err != nil {
		return err
	}
	logger.Info("loaded rules", "file", cfg.Rules, "count", len(ruleList))

	target := cfg.World
	if !cfg.InPlace && !cfg.DryRun {
		logger.Info("copying world", "from", cfg.World, "to", cfg.Output)
		if err := world.Copy(cfg.World, cfg.Output); err != nil {
			return fmt.Errorf("copying world: %w", err)
		}
		target = cfg.Output
	}

	paths, err := world.Discover(target)
	if err != nil {
		return err
	}
	logger.Info("discovered region files", "world", target, "count", len(paths))

	wallClock := clock.Real()
	startedAt := wallClock.Now()
	summary := replacer.Run(ctx, paths, replacer.Options{
		Rules:   ruleList,
		Workers: cfg.Workers,
		DryRun:  cfg.DryRun,
		Logger:  logger,
		Clock:   wallClock,
	})
	finishedAt := wallClock.Now()
	logger.Info("replaced total entries",
		"total", summary.Total,
		"files", len(summary.Files),
		"written", summary.Written(),
		"failed", summary.Failed(),
		"skipped_chunks", summary.ChunkFailures(),
	)

	runReport, err := report.New(summary, report.Options{
		World:      cfg.World,
		Output:     target,
		DryRun:     cfg.DryRun,
		Rules:      ruleList,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	})
	if err != nil {
		return fmt.Errorf("building run report: %w", err)
	}
	if err := report.Render(out, runReport, cli.IsTerminal(out)); err != nil {
		return err
	}
	if cfg.Report.Path != "" {
		format, err := report.ParseFormat(cfg.Report.Format)
		if err != nil {
			return err
		}
		if err := runReport.Write(cfg.Report.Path, format); err != nil {
			return err
		}
		logger.Info("wrote run report", "path", cfg.Report.Path, "format", string(format), "run_id", runReport.RunID.String())
	}

	if summary.Failed() > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
