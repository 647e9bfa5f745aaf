// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for massreplace.
//
// Configuration is loaded from a single file specified by either the
// MASSREPLACE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without either, the command runs on
// [Default] plus its flags.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${WORLD}, and ${VAR:-default} patterns are expanded. No
// other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- world, output, rules, worker and report settings
//   - [Default] -- returns a Config with the command's defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every problem at once
//
// This package depends on no other massreplace packages.
package config
