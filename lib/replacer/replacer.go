// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package replacer

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/bureau-foundation/massreplace/lib/clock"
	"github.com/bureau-foundation/massreplace/lib/palette"
	"github.com/bureau-foundation/massreplace/lib/region"
)

// Kind categorizes a failure. It is the region package's
// classification plus KindCanceled.
type Kind = region.Kind

// KindCanceled marks files that were never started because the run's
// context ended.
const KindCanceled Kind = "canceled"

// Classify returns the Kind of err.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return region.KindNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return region.Classify(err)
	}
}

// Options configures a run.
type Options struct {
	// Rules are applied to every palette entry in order.
	Rules []palette.Rule

	// Workers bounds the number of files processed at once. Zero or
	// negative means runtime.NumCPU().
	Workers int

	// DryRun counts matches without writing any file.
	DryRun bool

	// Logger receives progress and failures. Nil discards them.
	Logger *slog.Logger

	// Clock stamps rewritten chunks. Nil means the wall clock.
	Clock clock.Clock
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Failure is one chunk that was skipped.
type Failure struct {
	X, Z           int
	ChunkX, ChunkZ int
	Kind           Kind
	Message        string
}

// FileResult is the outcome of processing one container.
type FileResult struct {
	Path string

	// Matches is the number of palette entries rewritten.
	Matches int

	// PerRule counts matches by rule position.
	PerRule []int

	// ChunksDecoded counts slots whose tree was decoded.
	ChunksDecoded int

	// ChunksRewritten counts chunks re-encoded into the file, or that
	// would have been in a dry run.
	ChunksRewritten int

	// ChunkFailures lists slots that were skipped.
	ChunkFailures []Failure

	// Written reports whether the file on disk was replaced.
	Written bool

	// Err is set when the file as a whole failed; Kind classifies it.
	Err  error
	Kind Kind
}

// Summary is the outcome of a run. Files are in input order.
type Summary struct {
	Files   []FileResult
	Total   int
	PerRule []int
}

// Failed returns the number of files that failed outright.
func (s Summary) Failed() int {
	count := 0
	for _, file := range s.Files {
		if file.Err != nil {
			count++
		}
	}
	return count
}

// Written returns the number of files that were rewritten.
func (s Summary) Written() int {
	count := 0
	for _, file := range s.Files {
		if file.Written {
			count++
		}
	}
	return count
}

// ChunkFailures returns the number of skipped chunks across all files.
func (s Summary) ChunkFailures() int {
	count := 0
	for _, file := range s.Files {
		count += len(file.ChunkFailures)
	}
	return count
}

// ProcessFile applies options.Rules to one container.
func ProcessFile(path string, options Options) FileResult {
	return processFile(path, palette.NewEngine(options.Rules), options)
}

func processFile(path string, engine *palette.Engine, options Options) FileResult {
	logger := options.logger()
	result := FileResult{Path: path, PerRule: make([]int, len(options.Rules))}
	regionOptions := region.Options{Logger: logger, Clock: options.Clock}

	logger.Info("processing region file", "file", path)
	container, err := region.Read(path, regionOptions)
	if err != nil {
		return result.fail(err, logger)
	}

	perChunk := make(map[*region.Chunk]palette.Result)
	for chunk := range container.Chunks() {
		if !chunk.Decoded() {
			continue
		}
		result.ChunksDecoded++
		applied := engine.Apply(chunk.Root.Tag)
		if applied.Matches == 0 {
			continue
		}
		perChunk[chunk] = applied
		chunk.MarkDirty()
	}

	readFailures := len(container.Failures())
	if !options.DryRun && len(perChunk) > 0 {
		if err := container.Write(regionOptions); err != nil {
			result.collectFailures(container)
			return result.fail(err, logger)
		}
	}

	// Chunks that failed to re-encode kept their old bytes, so their
	// matches did not reach the file. When none are left the container
	// skipped the write entirely.
	for _, failure := range container.Failures()[readFailures:] {
		delete(perChunk, container.Chunk(failure.X, failure.Z))
	}
	result.Written = !options.DryRun && len(perChunk) > 0
	for _, applied := range perChunk {
		result.Matches += applied.Matches
		for i, count := range applied.PerRule {
			result.PerRule[i] += count
		}
	}
	result.ChunksRewritten = len(perChunk)
	result.collectFailures(container)

	logger.Info("replaced entries",
		"file", path,
		"matches", result.Matches,
		"chunks", result.ChunksRewritten,
		"skipped_chunks", len(result.ChunkFailures),
	)
	return result
}

func (r *FileResult) collectFailures(container *region.Container) {
	r.ChunkFailures = r.ChunkFailures[:0]
	for _, failure := range container.Failures() {
		r.ChunkFailures = append(r.ChunkFailures, Failure{
			X:       failure.X,
			Z:       failure.Z,
			ChunkX:  failure.ChunkX,
			ChunkZ:  failure.ChunkZ,
			Kind:    region.Classify(failure.Err),
			Message: failure.Err.Error(),
		})
	}
}

func (r FileResult) fail(err error, logger *slog.Logger) FileResult {
	r.Err = err
	r.Kind = Classify(err)
	r.Matches = 0
	clear(r.PerRule)
	r.ChunksRewritten = 0
	logger.Error("skipping region file",
		"file", r.Path,
		"kind", string(r.Kind),
		"error", err,
	)
	return r
}

// Run processes paths on a pool of options.Workers goroutines and
// returns their results in input order. Once ctx is done no further
// files are started; files already running finish.
func Run(ctx context.Context, paths []string, options Options) Summary {
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	engine := palette.NewEngine(options.Rules)
	if skipped := engine.Skipped(); skipped > 0 {
		options.logger().Warn("ignoring inapplicable rules", "count", skipped)
	}

	results := make([]FileResult, len(paths))
	workerPool := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for i, path := range paths {
		if ctx.Err() != nil {
			results[i] = canceled(path, ctx.Err(), len(options.Rules))
			continue
		}
		workerPool.Go(func(ctx context.Context) error {
			if ctx.Err() != nil {
				results[i] = canceled(path, ctx.Err(), len(options.Rules))
				return nil
			}
			results[i] = processFile(path, engine, options)
			return nil
		})
	}
	// Workers never return errors; failures live in the results.
	_ = workerPool.Wait()

	summary := Summary{Files: results, PerRule: make([]int, len(options.Rules))}
	for _, result := range results {
		summary.Total += result.Matches
		for i, count := range result.PerRule {
			summary.PerRule[i] += count
		}
	}
	return summary
}

func canceled(path string, err error, rules int) FileResult {
	return FileResult{Path: path, PerRule: make([]int, rules), Err: err, Kind: KindCanceled}
}
