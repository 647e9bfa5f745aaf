// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Production code accepts a Clock instead of calling time.Now. In
// production Real() provides the standard library behavior; in tests
// Fake() returns a clock that only moves when told to, so timestamps
// written into region headers and run reports are deterministic:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	container.Write(region.Options{Clock: c})
//	c.Advance(time.Minute)
package clock
