// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/massreplace/lib/binhash"
	"github.com/bureau-foundation/massreplace/lib/codec"
	"github.com/bureau-foundation/massreplace/lib/palette"
	"github.com/bureau-foundation/massreplace/lib/replacer"
	"github.com/bureau-foundation/massreplace/lib/version"
)

// Format selects the encoding of a report file.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat accepts "json" or "cbor".
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCBOR:
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want json or cbor)", name)
	}
}

// Report is the record of one run.
type Report struct {
	RunID      uuid.UUID `json:"run_id"`
	Version    string    `json:"version"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// World is the source save; Output is the directory that was
	// modified, equal to World for in-place runs.
	World  string `json:"world"`
	Output string `json:"output"`
	DryRun bool   `json:"dry_run,omitempty"`

	Rules []Rule `json:"rules"`
	Files []File `json:"files"`

	Total         int `json:"total"`
	FilesWritten  int `json:"files_written"`
	FilesFailed   int `json:"files_failed"`
	ChunksSkipped int `json:"chunks_skipped"`
}

// Rule is one rule and the number of entries it rewrote.
type Rule struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Matches int    `json:"matches"`
}

// File is the outcome for one container.
type File struct {
	Path            string    `json:"path"`
	Matches         int       `json:"matches"`
	ChunksDecoded   int       `json:"chunks_decoded"`
	ChunksRewritten int       `json:"chunks_rewritten"`
	Written         bool      `json:"written,omitempty"`
	Digest          string    `json:"digest,omitempty"`
	Kind            string    `json:"kind,omitempty"`
	Error           string    `json:"error,omitempty"`
	ChunkFailures   []Failure `json:"chunk_failures,omitempty"`
}

// Failure is one skipped chunk.
type Failure struct {
	X       int    `json:"x"`
	Z       int    `json:"z"`
	ChunkX  int    `json:"chunk_x"`
	ChunkZ  int    `json:"chunk_z"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Options describes the run a summary came from.
type Options struct {
	// RunID identifies the run. The zero UUID means generate one.
	RunID uuid.UUID

	World      string
	Output     string
	DryRun     bool
	Rules      []palette.Rule
	StartedAt  time.Time
	FinishedAt time.Time
}

// New builds a report from summary. Files that were written are
// hashed from disk, so New must run after the run has finished.
func New(summary replacer.Summary, options Options) (*Report, error) {
	runID := options.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	output := options.Output
	if output == "" {
		output = options.World
	}
	report := &Report{
		RunID:         runID,
		Version:       version.Short(),
		StartedAt:     options.StartedAt.UTC(),
		FinishedAt:    options.FinishedAt.UTC(),
		World:         options.World,
		Output:        output,
		DryRun:        options.DryRun,
		Rules:         make([]Rule, len(options.Rules)),
		Files:         make([]File, 0, len(summary.Files)),
		Total:         summary.Total,
		FilesWritten:  summary.Written(),
		FilesFailed:   summary.Failed(),
		ChunksSkipped: summary.ChunkFailures(),
	}
	for i, rule := range options.Rules {
		report.Rules[i] = Rule{From: rule.From, To: rule.To}
		if i < len(summary.PerRule) {
			report.Rules[i].Matches = summary.PerRule[i]
		}
	}

	for _, result := range summary.Files {
		file := File{
			Path:            result.Path,
			Matches:         result.Matches,
			ChunksDecoded:   result.ChunksDecoded,
			ChunksRewritten: result.ChunksRewritten,
			Written:         result.Written,
			Kind:            string(result.Kind),
		}
		if result.Err != nil {
			file.Error = result.Err.Error()
		}
		if result.Written {
			digest, err := binhash.HashFile(result.Path)
			if err != nil {
				return nil, err
			}
			file.Digest = digest.String()
		}
		for _, failure := range result.ChunkFailures {
			file.ChunkFailures = append(file.ChunkFailures, Failure{
				X:       failure.X,
				Z:       failure.Z,
				ChunkX:  failure.ChunkX,
				ChunkZ:  failure.ChunkZ,
				Kind:    string(failure.Kind),
				Message: failure.Message,
			})
		}
		report.Files = append(report.Files, file)
	}
	return report, nil
}

// Duration returns how long the run took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Encode returns the report in the given format. JSON output is
// indented and newline-terminated.
func (r *Report) Encode(format Format) ([]byte, error) {
	if format == FormatCBOR {
		data, err := codec.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encoding report: %w", err)
		}
		return data, nil
	}
	var buffer bytes.Buffer
	if err := r.encode(&buffer, format); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (r *Report) encode(w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(r)
	case FormatCBOR:
		err = codec.NewEncoder(w).Encode(r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Write streams the report to path, creating parent directories.
func (r *Report) Write(path string, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	writer := bufio.NewWriter(file)
	if err := r.encode(writer, format); err != nil {
		file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Read loads a report written by [Report.Write] in either format. The
// format is recognized from the content: JSON reports start with '{'
// after any leading whitespace, CBOR reports with a map header.
func Read(path string) (*Report, Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading report: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	format, err := sniffFormat(reader)
	if err != nil {
		return nil, "", fmt.Errorf("reading report %s: %w", path, err)
	}
	report := &Report{}
	if format == FormatJSON {
		err = json.NewDecoder(reader).Decode(report)
	} else {
		err = codec.NewDecoder(reader).Decode(report)
	}
	if err != nil {
		return nil, "", fmt.Errorf("decoding report %s: %w", path, err)
	}
	return report, format, nil
}

// sniffFormat consumes leading ASCII whitespace and reports which
// format the next byte starts. A CBOR map header is never whitespace.
func sniffFormat(reader *bufio.Reader) (Format, error) {
	for {
		next, err := reader.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", errors.New("report file is empty")
			}
			return "", err
		}
		switch next[0] {
		case ' ', '\t', '\n', '\r':
			reader.Discard(1)
		case '{':
			return FormatJSON, nil
		default:
			return FormatCBOR, nil
		}
	}
}
