// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the massreplace
// binary. It covers the raw I/O that happens before the structured
// logger exists: reporting a fatal error to stderr and exiting with a
// code chosen by the command.
package process
