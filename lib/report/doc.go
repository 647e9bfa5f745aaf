// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report turns a replacement run into a durable record.
//
// [New] builds a [Report] from a [replacer.Summary]: every file's
// outcome, per-rule totals, and a BLAKE3 digest of each file the run
// rewrote. [Write] stores the report as indented JSON or as
// deterministic CBOR, and [Read] loads either form back. [Render]
// prints the summary table the CLI shows at the end of a run, with
// lipgloss styling when the output is a terminal.
package report
