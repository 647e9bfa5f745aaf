// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import "github.com/RoaringBitmap/roaring"

// SectorAllocator tracks which sectors of a container are in use and
// hands out ranges for relocated payloads. The policy is first fit:
// the lowest free run long enough wins, otherwise the range is
// appended after the last used sector. The header sectors are always
// in use.
type SectorAllocator struct {
	used *roaring.Bitmap
}

// NewSectorAllocator returns an allocator with only the header
// sectors in use.
func NewSectorAllocator() *SectorAllocator {
	used := roaring.New()
	used.AddRange(0, HeaderSectors)
	return &SectorAllocator{used: used}
}

// Reserve marks count sectors starting at offset as used. It reports
// false if any of them was already in use.
func (a *SectorAllocator) Reserve(offset, count uint32) bool {
	free := true
	for sector := offset; sector < offset+count; sector++ {
		if a.used.Contains(sector) {
			free = false
			break
		}
	}
	a.used.AddRange(uint64(offset), uint64(offset)+uint64(count))
	return free
}

// Allocate reserves count consecutive free sectors and returns the
// first. count must be positive.
func (a *SectorAllocator) Allocate(count uint32) uint32 {
	candidate := uint32(0)
	iterator := a.used.Iterator()
	for iterator.HasNext() {
		sector := iterator.Next()
		if sector-candidate >= count {
			break
		}
		candidate = sector + 1
	}
	a.used.AddRange(uint64(candidate), uint64(candidate)+uint64(count))
	return candidate
}

// Free releases count sectors starting at offset. Header sectors are
// never released.
func (a *SectorAllocator) Free(offset, count uint32) {
	start := max(offset, HeaderSectors)
	end := offset + count
	if end <= start {
		return
	}
	a.used.RemoveRange(uint64(start), uint64(end))
}

// InUse reports whether sector is reserved.
func (a *SectorAllocator) InUse(sector uint32) bool {
	return a.used.Contains(sector)
}

// End returns the sector just past the last one in use.
func (a *SectorAllocator) End() uint32 {
	return a.used.Maximum() + 1
}
