// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the current time for testability. Production code
// injects Real(); tests inject Fake() with a pinned time.
//
// Code that stamps data with the current time (chunk timestamps, report
// start and finish times) should take a Clock instead of calling
// time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// OrReal returns c, or Real() when c is nil. Option structs use it so
// the zero value means "wall clock".
func OrReal(c Clock) Clock {
	if c == nil {
		return Real()
	}
	return c
}
