// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package palette rewrites block names in the palettes of a decoded
// chunk tree.
//
// A chunk stores its blocks per vertical section. Each section's
// block_states compound holds a palette list naming the distinct block
// types the section uses; the packed state data indexes into it. Renaming
// a palette entry therefore replaces every block of that type in the
// section without touching the packed data.
//
// The walk follows sections → block_states → palette → Name. Every one of
// those keys is optional, and a missing or differently typed member means
// there is nothing to rewrite at that point, never an error.
//
// Rules are tested in order against the entry's current name, so a rule
// whose From equals an earlier rule's To rewrites the same entry again
// and both rules count a match:
//
//	rules: stone → granite, granite → diorite
//	entry: stone ⇒ diorite, two matches
//
// This chaining reproduces the behavior of the tool this one replaces.
// It is likely unintended there, and callers that want one rewrite per
// entry should keep From and To values disjoint.
package palette
