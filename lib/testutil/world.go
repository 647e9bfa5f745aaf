// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/massreplace/lib/compression"
	"github.com/bureau-foundation/massreplace/lib/nbt"
	"github.com/bureau-foundation/massreplace/lib/region"
)

// Slot identifies a chunk slot within a region file.
type Slot struct{ X, Z int }

// ChunkTree returns a chunk root with one section per argument, each
// section's palette holding the given block names in order.
//
//	root := testutil.ChunkTree(t, []string{"minecraft:stone", "minecraft:dirt"})
func ChunkTree(t *testing.T, sections ...[]string) nbt.Root {
	t.Helper()
	sectionList := &nbt.List{Element: nbt.TagCompound}
	for y, names := range sections {
		palette := &nbt.List{Element: nbt.TagCompound}
		for _, name := range names {
			if err := palette.Append(nbt.NewCompound(nbt.Entry{Name: "Name", Tag: nbt.String(name)})); err != nil {
				t.Fatalf("building palette: %v", err)
			}
		}
		section := nbt.NewCompound(
			nbt.Entry{Name: "Y", Tag: nbt.Byte(int8(y))},
			nbt.Entry{Name: "block_states", Tag: nbt.NewCompound(nbt.Entry{Name: "palette", Tag: palette})},
		)
		if err := sectionList.Append(section); err != nil {
			t.Fatalf("building sections: %v", err)
		}
	}
	return nbt.Root{Tag: nbt.NewCompound(
		nbt.Entry{Name: "DataVersion", Tag: nbt.Int(3465)},
		nbt.Entry{Name: "Status", Tag: nbt.String("minecraft:full")},
		nbt.Entry{Name: "sections", Tag: sectionList},
	)}
}

// WriteRegion writes a region file at path holding chunks, compressed
// with scheme. Parent directories are created as needed.
func WriteRegion(t *testing.T, path string, scheme compression.Scheme, chunks map[Slot]nbt.Root) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	container, err := region.New(path)
	if err != nil {
		t.Fatalf("creating region %s: %v", path, err)
	}
	for slot, root := range chunks {
		if _, err := container.SetChunk(slot.X, slot.Z, root, scheme); err != nil {
			t.Fatalf("storing chunk %d,%d: %v", slot.X, slot.Z, err)
		}
	}
	if err := container.Write(region.Options{}); err != nil {
		t.Fatalf("writing region %s: %v", path, err)
	}
}

// CorruptSlot overwrites the first bytes of a slot's compressed
// payload so that decompression fails. The length field and scheme
// marker are left intact.
func CorruptSlot(t *testing.T, path string, slot Slot) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	header, err := region.ParseHeader(data)
	if err != nil {
		t.Fatalf("parsing header of %s: %v", path, err)
	}
	location := header.Locations[region.SlotIndex(slot.X, slot.Z)]
	if location.IsEmpty() {
		t.Fatalf("slot %d,%d of %s is empty", slot.X, slot.Z, path)
	}
	start := int(location.Offset) * region.SectorSize
	length := int(binary.BigEndian.Uint32(data[start:]))
	for i := start + 5; i < start+4+length && i < start+13; i++ {
		data[i] = 0xff
	}
	WriteFile(t, path, data)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ReadFile returns the contents of path.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}
