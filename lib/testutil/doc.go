// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for building synthetic
// world saves.
//
// [ChunkTree] returns a minimal chunk tree with the sections and
// palette names a test cares about. [WriteRegion] encodes such trees
// into a real region file through the region package, so fixtures use
// the same write path as production. [CorruptSlot] damages one slot's
// compressed bytes in place for failure-policy tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
