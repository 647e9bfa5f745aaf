// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework of the massreplace binary.
//
// A [Command] is a node in the command tree: it either dispatches to
// subcommands by name or parses its flags and calls Run. Unknown
// commands and flags get "did you mean" suggestions based on edit
// distance. Flags are declared as tagged struct fields and bound with
// [FlagsFromParams]:
//
//	type replaceParams struct {
//	    World  string `flag:"world" desc:"world save directory"`
//	    Blocks string `flag:"blocks" desc:"rule file" default:"blocks.json"`
//	}
//
// [NewCommandLogger] builds the slog logger commands log through, and
// [ExitError] lets a command choose a non-zero exit code after writing
// its own output.
package cli
