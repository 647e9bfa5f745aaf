// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"encoding/binary"
	"fmt"
)

const (
	// SectorSize is the allocation unit for chunk payloads.
	SectorSize = 4096

	// HeaderSize is the length of the location and timestamp tables.
	HeaderSize = 2 * SectorSize

	// HeaderSectors is the number of sectors the header occupies.
	HeaderSectors = HeaderSize / SectorSize

	// GridSize is the width and depth of a container in chunks.
	GridSize = 32

	// SlotCount is the number of chunk slots in a container.
	SlotCount = GridSize * GridSize

	// MaxInlineSectors is the largest payload footprint a location
	// entry can describe. Larger payloads are stored externally.
	MaxInlineSectors = 255

	// payloadPrefix is the length field plus the scheme marker.
	payloadPrefix = 5

	externalFlag = 0x80
)

// Location is one entry of the location table.
type Location struct {
	// Offset is the first sector of the payload.
	Offset uint32

	// Sectors is the number of sectors allocated to the payload.
	Sectors uint8
}

// ParseLocation unpacks a raw location table entry.
func ParseLocation(raw uint32) Location {
	return Location{Offset: raw >> 8, Sectors: uint8(raw)}
}

// Pack returns the raw table entry for the location.
func (l Location) Pack() uint32 {
	return l.Offset<<8 | uint32(l.Sectors)
}

// IsEmpty reports whether the entry marks an absent chunk.
func (l Location) IsEmpty() bool {
	return l.Offset == 0 && l.Sectors == 0
}

// End returns the sector just past the allocation.
func (l Location) End() uint32 {
	return l.Offset + uint32(l.Sectors)
}

func (l Location) String() string {
	return fmt.Sprintf("%d+%d", l.Offset, l.Sectors)
}

// Header holds both header tables, indexed by [SlotIndex].
type Header struct {
	Locations  [SlotCount]Location
	Timestamps [SlotCount]uint32
}

// ParseHeader decodes the first HeaderSize bytes of data.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("header needs %d bytes, have %d", HeaderSize, len(data))
	}
	header := &Header{}
	for i := range SlotCount {
		header.Locations[i] = ParseLocation(binary.BigEndian.Uint32(data[i*4:]))
		header.Timestamps[i] = binary.BigEndian.Uint32(data[SectorSize+i*4:])
	}
	return header, nil
}

// Encode writes both tables into the first HeaderSize bytes of dst,
// which must be at least that long.
func (h *Header) Encode(dst []byte) {
	for i := range SlotCount {
		binary.BigEndian.PutUint32(dst[i*4:], h.Locations[i].Pack())
		binary.BigEndian.PutUint32(dst[SectorSize+i*4:], h.Timestamps[i])
	}
}

// sectorsFor returns how many sectors a payload of the given byte
// length occupies.
func sectorsFor(length int) int {
	return (length + SectorSize - 1) / SectorSize
}
