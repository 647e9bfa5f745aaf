// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"math"
	"slices"
)

// Equal reports whether two trees are structurally identical: same
// variants, same values, same member order. Floating-point values are
// compared by bit pattern, so NaN payloads round-trip as equal.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ID() != b.ID() {
		return false
	}
	switch a := a.(type) {
	case Byte, Short, Int, Long, String:
		return a == b
	case Float:
		return math.Float32bits(float32(a)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(a)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return slices.Equal(a, b.(ByteArray))
	case IntArray:
		return slices.Equal(a, b.(IntArray))
	case LongArray:
		return slices.Equal(a, b.(LongArray))
	case *List:
		other := b.(*List)
		if a.Element != other.Element || len(a.Items) != len(other.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], other.Items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		other := b.(*Compound)
		if len(a.entries) != len(other.entries) {
			return false
		}
		for i, entry := range a.entries {
			if entry.Name != other.entries[i].Name || !Equal(entry.Tag, other.entries[i].Tag) {
				return false
			}
		}
		return true
	}
	return false
}
