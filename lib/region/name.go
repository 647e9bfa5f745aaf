// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Extension is the file extension of region containers.
const Extension = ".mca"

// ParseFileName extracts the region coordinates from a container file
// name of the form r.<regionX>.<regionZ>.mca.
func ParseFileName(name string) (regionX, regionZ int, err error) {
	parts := strings.Split(name, ".")
	if len(parts) != 4 || parts[0] != "r" || "."+parts[3] != Extension {
		return 0, 0, fmt.Errorf("region file name %q is not r.<x>.<z>%s", name, Extension)
	}
	regionX, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("region file name %q: x coordinate: %w", name, err)
	}
	regionZ, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("region file name %q: z coordinate: %w", name, err)
	}
	return regionX, regionZ, nil
}

// FileName returns the container file name for a region.
func FileName(regionX, regionZ int) string {
	return fmt.Sprintf("r.%d.%d%s", regionX, regionZ, Extension)
}

// SlotIndex returns the header table index of slot (x, z).
func SlotIndex(x, z int) int {
	return x + GridSize*z
}

// SlotCoords is the inverse of SlotIndex.
func SlotCoords(index int) (x, z int) {
	return index % GridSize, index / GridSize
}

// ChunkPos maps a slot of region (regionX, regionZ) to absolute chunk
// coordinates.
func ChunkPos(regionX, regionZ, x, z int) (chunkX, chunkZ int) {
	return regionX*GridSize + x, regionZ*GridSize + z
}

// ExternalFileName returns the name of the file holding an oversized
// chunk's payload.
func ExternalFileName(chunkX, chunkZ int) string {
	return fmt.Sprintf("c.%d.%d.mcc", chunkX, chunkZ)
}
