// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Colors use ANSI 256-color codes for broad terminal compatibility.
var (
	headerColor  = lipgloss.Color("245")
	writtenColor = lipgloss.Color("114")
	warnColor    = lipgloss.Color("214")
	failedColor  = lipgloss.Color("203")
)

type styles struct {
	title, header, written, warn, failed, plain lipgloss.Style
}

// newStyles pins the renderer's profile instead of letting lipgloss
// detect one from w: Ascii drops every escape sequence, ANSI256 matches
// the palette above.
func newStyles(w io.Writer, styled bool) styles {
	profile := termenv.Ascii
	if styled {
		profile = termenv.ANSI256
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	plain := renderer.NewStyle()
	return styles{
		title:   plain.Bold(true),
		header:  plain.Bold(true).Foreground(headerColor),
		written: plain.Foreground(writtenColor),
		warn:    plain.Foreground(warnColor),
		failed:  plain.Foreground(failedColor),
		plain:   plain,
	}
}

// Render writes a human-readable summary of report to w. Styling is
// applied only when styled is set; callers pass whether w is a
// terminal.
func Render(w io.Writer, report *Report, styled bool) error {
	s := newStyles(w, styled)
	var out strings.Builder

	title := "Run " + report.RunID.String()
	if report.DryRun {
		title += " (dry run)"
	}
	out.WriteString(s.title.Render(title) + "\n")
	fmt.Fprintf(&out, "World   %s\n", report.World)
	if report.Output != report.World {
		fmt.Fprintf(&out, "Output  %s\n", report.Output)
	}
	if !report.StartedAt.IsZero() && !report.FinishedAt.IsZero() {
		fmt.Fprintf(&out, "Took    %s\n", report.Duration().Round(time.Millisecond))
	}

	if len(report.Files) > 0 {
		base := report.Output
		paths := make([]string, len(report.Files))
		pathWidth := len("FILE")
		for i, file := range report.Files {
			paths[i] = displayPath(base, file.Path)
			pathWidth = max(pathWidth, ansi.StringWidth(paths[i]))
		}

		out.WriteString("\n")
		out.WriteString(s.header.Render(row(pathWidth, "FILE", "MATCHES", "CHUNKS", "STATUS")) + "\n")
		for i, file := range report.Files {
			status, style := fileStatus(file, report.DryRun, s)
			line := row(pathWidth, paths[i], fmt.Sprint(file.Matches), fmt.Sprint(file.ChunksRewritten), "")
			out.WriteString(line + style.Render(status) + "\n")
		}
	}

	if len(report.Rules) > 0 {
		ruleWidth := len("RULE")
		names := make([]string, len(report.Rules))
		for i, rule := range report.Rules {
			names[i] = ruleName(rule)
			ruleWidth = max(ruleWidth, ansi.StringWidth(names[i]))
		}
		out.WriteString("\n")
		out.WriteString(s.header.Render(fmt.Sprintf("%-*s  %7s", ruleWidth, "RULE", "MATCHES")) + "\n")
		for i, rule := range report.Rules {
			fmt.Fprintf(&out, "%-*s  %7d\n", ruleWidth, names[i], rule.Matches)
		}
	}

	out.WriteString("\n")
	out.WriteString(s.title.Render(totalLine(report)) + "\n")

	_, err := io.WriteString(w, out.String())
	return err
}

func row(pathWidth int, path, matches, chunks, status string) string {
	return fmt.Sprintf("%-*s  %7s  %6s  %s", pathWidth, path, matches, chunks, status)
}

func displayPath(base, path string) string {
	if base == "" {
		return path
	}
	relative, err := filepath.Rel(base, path)
	if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return path
	}
	return relative
}

func ruleName(rule Rule) string {
	from, to := rule.From, rule.To
	if from == "" {
		from = "(empty)"
	}
	if to == "" {
		to = "(empty)"
	}
	return from + " -> " + to
}

func fileStatus(file File, dryRun bool, s styles) (string, lipgloss.Style) {
	switch {
	case file.Error != "":
		return "failed: " + file.Kind, s.failed
	case len(file.ChunkFailures) > 0:
		return fmt.Sprintf("%s, %s skipped", outcome(file, dryRun), plural(len(file.ChunkFailures), "chunk")), s.warn
	case file.Written:
		return "written", s.written
	default:
		return outcome(file, dryRun), s.plain
	}
}

func outcome(file File, dryRun bool) string {
	switch {
	case file.Written:
		return "written"
	case dryRun && file.ChunksRewritten > 0:
		return "would write"
	default:
		return "unchanged"
	}
}

func totalLine(report *Report) string {
	line := fmt.Sprintf("Replaced total %d entries in %s", report.Total, plural(len(report.Files), "file"))
	var details []string
	if report.FilesWritten > 0 {
		details = append(details, fmt.Sprintf("%d written", report.FilesWritten))
	}
	if report.FilesFailed > 0 {
		details = append(details, fmt.Sprintf("%d failed", report.FilesFailed))
	}
	if report.ChunksSkipped > 0 {
		details = append(details, plural(report.ChunksSkipped, "chunk")+" skipped")
	}
	if len(details) > 0 {
		line += " (" + strings.Join(details, ", ") + ")"
	}
	return line
}

func plural(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
