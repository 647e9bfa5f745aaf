// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/massreplace/lib/clock"
	"github.com/bureau-foundation/massreplace/lib/compression"
	"github.com/bureau-foundation/massreplace/lib/nbt"
)

var writeTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// chunkTree returns a chunk tree with one section whose palette holds
// the given block names.
func chunkTree(t *testing.T, names ...string) nbt.Root {
	t.Helper()
	palette := &nbt.List{Element: nbt.TagCompound}
	for _, name := range names {
		if err := palette.Append(nbt.NewCompound(nbt.Entry{Name: "Name", Tag: nbt.String(name)})); err != nil {
			t.Fatalf("building palette: %v", err)
		}
	}
	sections, err := nbt.NewList(nbt.TagCompound, nbt.NewCompound(
		nbt.Entry{Name: "Y", Tag: nbt.Byte(0)},
		nbt.Entry{Name: "block_states", Tag: nbt.NewCompound(nbt.Entry{Name: "palette", Tag: palette})},
	))
	if err != nil {
		t.Fatalf("building sections: %v", err)
	}
	return nbt.Root{Tag: nbt.NewCompound(
		nbt.Entry{Name: "DataVersion", Tag: nbt.Int(3465)},
		nbt.Entry{Name: "sections", Tag: sections},
	)}
}

func paletteNames(t *testing.T, root nbt.Root) []string {
	t.Helper()
	sections, ok := root.Tag.List("sections")
	if !ok {
		t.Fatal("tree has no sections list")
	}
	var names []string
	for _, section := range sections.Compounds() {
		states, _ := section.Compound("block_states")
		palette, _ := states.List("palette")
		for _, entry := range palette.Compounds() {
			name, _ := entry.String("Name")
			names = append(names, name)
		}
	}
	return names
}

func encodePayload(t *testing.T, root nbt.Root, scheme compression.Scheme) []byte {
	t.Helper()
	raw, err := nbt.Encode(root)
	if err != nil {
		t.Fatalf("encoding tree: %v", err)
	}
	payload, err := compression.Compress(raw, scheme)
	if err != nil {
		t.Fatalf("compressing tree: %v", err)
	}
	return payload
}

type testSlot struct {
	x, z      int
	marker    byte
	payload   []byte
	timestamp uint32
}

// buildContainer lays out slots back to back from the first sector
// after the header, independently of Write.
func buildContainer(t *testing.T, slots ...testSlot) []byte {
	t.Helper()
	data := make([]byte, HeaderSize)
	var header Header
	for _, slot := range slots {
		offset := len(data) / SectorSize
		body := make([]byte, payloadPrefix+len(slot.payload))
		binary.BigEndian.PutUint32(body, uint32(len(slot.payload)+1))
		body[4] = slot.marker
		copy(body[payloadPrefix:], slot.payload)
		sectors := sectorsFor(len(body))
		padded := make([]byte, sectors*SectorSize)
		copy(padded, body)
		data = append(data, padded...)

		index := SlotIndex(slot.x, slot.z)
		header.Locations[index] = Location{Offset: uint32(offset), Sectors: uint8(sectors)}
		header.Timestamps[index] = slot.timestamp
	}
	header.Encode(data)
	return data
}

func writeRegion(t *testing.T, directory string, data []byte) string {
	t.Helper()
	path := filepath.Join(directory, "r.0.0.mca")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing region file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

func sectorBytes(data []byte, location Location) []byte {
	return data[int(location.Offset)*SectorSize : int(location.End())*SectorSize]
}

func TestReadDecodesEverySlot(t *testing.T) {
	directory := t.TempDir()
	path := writeRegion(t, directory, buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.Zlib), timestamp: 100},
		testSlot{x: 5, z: 3, marker: byte(compression.LZ4), payload: encodePayload(t, chunkTree(t, "minecraft:dirt"), compression.LZ4), timestamp: 200},
		testSlot{x: 31, z: 31, marker: byte(compression.None), payload: encodePayload(t, chunkTree(t, "minecraft:sand"), compression.None)},
	))

	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if container.Len() != 3 {
		t.Errorf("Len = %d, want 3", container.Len())
	}
	if len(container.Failures()) != 0 {
		t.Fatalf("unexpected failures: %v", container.Failures())
	}

	tests := []struct {
		x, z      int
		scheme    compression.Scheme
		timestamp uint32
		name      string
	}{
		{0, 0, compression.Zlib, 100, "minecraft:stone"},
		{5, 3, compression.LZ4, 200, "minecraft:dirt"},
		{31, 31, compression.None, 0, "minecraft:sand"},
	}
	for _, tt := range tests {
		chunk := container.Chunk(tt.x, tt.z)
		if chunk == nil {
			t.Fatalf("slot %d,%d missing", tt.x, tt.z)
		}
		if chunk.Scheme != tt.scheme || chunk.Timestamp != tt.timestamp || chunk.External {
			t.Errorf("slot %d,%d = scheme %s ts %d external %v", tt.x, tt.z, chunk.Scheme, chunk.Timestamp, chunk.External)
		}
		if names := paletteNames(t, chunk.Root); !slices.Equal(names, []string{tt.name}) {
			t.Errorf("slot %d,%d palette = %v, want [%s]", tt.x, tt.z, names, tt.name)
		}
	}
	if container.Chunk(1, 0) != nil {
		t.Error("empty slot 1,0 returned a chunk")
	}
	if container.Chunk(32, 0) != nil {
		t.Error("out of range slot returned a chunk")
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := writeRegion(t, t.TempDir(), nil)
	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read of zero-length file failed: %v", err)
	}
	if container.Len() != 0 {
		t.Errorf("Len = %d, want 0", container.Len())
	}
	if err := container.Write(Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if data := readFile(t, path); len(data) != 0 {
		t.Errorf("untouched empty container grew to %d bytes", len(data))
	}
}

func TestReadUnreadable(t *testing.T) {
	directory := t.TempDir()

	short := writeRegion(t, directory, make([]byte, HeaderSize-1))
	if _, err := Read(short, Options{}); !errors.Is(err, ErrUnreadableContainer) {
		t.Errorf("short header: error = %v, want ErrUnreadableContainer", err)
	}

	badName := filepath.Join(directory, "region.mca")
	if err := os.WriteFile(badName, make([]byte, HeaderSize), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(badName, Options{}); !errors.Is(err, ErrUnreadableContainer) {
		t.Errorf("bad name: error = %v, want ErrUnreadableContainer", err)
	}

	if _, err := Read(filepath.Join(directory, "r.9.9.mca"), Options{}); !errors.Is(err, ErrUnreadableContainer) {
		t.Errorf("missing file: error = %v, want ErrUnreadableContainer", err)
	}
}

func TestReadInvalidSlots(t *testing.T) {
	good := encodePayload(t, chunkTree(t, "minecraft:stone"), compression.Zlib)
	data := buildContainer(t, testSlot{x: 0, z: 0, marker: byte(compression.Zlib), payload: good})

	parsed, err := ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	header := *parsed
	header.Locations[SlotIndex(1, 0)] = Location{Offset: 1, Sectors: 1}  // inside header
	header.Locations[SlotIndex(2, 0)] = Location{Offset: 40, Sectors: 1} // past end of file
	header.Locations[SlotIndex(3, 0)] = Location{Offset: 2, Sectors: 1}  // overlaps slot 0,0
	header.Locations[SlotIndex(4, 0)] = Location{Offset: 5, Sectors: 0}  // zero count
	header.Locations[SlotIndex(5, 0)] = Location{Offset: 3, Sectors: 1}  // zero length field
	header.Locations[SlotIndex(6, 0)] = Location{Offset: 4, Sectors: 1}  // unsupported scheme
	data = append(data, make([]byte, 2*SectorSize)...)
	data[4*SectorSize+3] = 2
	data[4*SectorSize+4] = byte(compression.Custom)
	header.Encode(data)

	container, err := Read(writeRegion(t, t.TempDir(), data), Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !container.Chunk(0, 0).Decoded() {
		t.Fatalf("slot 0,0 should decode, got %v", container.Chunk(0, 0).Err)
	}

	wantKinds := map[int]Kind{
		1: KindCorruptChunk,
		2: KindCorruptChunk,
		3: KindCorruptChunk,
		4: KindCorruptChunk,
		5: KindCorruptChunk,
		6: KindUnsupportedCompression,
	}
	if len(container.Failures()) != len(wantKinds) {
		t.Fatalf("got %d failures, want %d: %v", len(container.Failures()), len(wantKinds), container.Failures())
	}
	for x, want := range wantKinds {
		chunk := container.Chunk(x, 0)
		if chunk == nil || chunk.Decoded() {
			t.Errorf("slot %d,0 should be present and undecoded", x)
			continue
		}
		if got := Classify(chunk.Err); got != want {
			t.Errorf("slot %d,0 kind = %q, want %q (%v)", x, got, want, chunk.Err)
		}
		var chunkError *ChunkError
		if !errors.As(chunk.Err, &chunkError) || chunkError.X != x || chunkError.Z != 0 {
			t.Errorf("slot %d,0 error is not a ChunkError for that slot: %v", x, chunk.Err)
		}
	}
}

func TestWriteUntouchedIsNoop(t *testing.T) {
	directory := t.TempDir()
	original := buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.Zlib), timestamp: 7},
	)
	path := writeRegion(t, directory, original)

	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if err := container.Write(Options{Clock: clock.Fake(writeTime)}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Equal(readFile(t, path), original) {
		t.Error("container with no dirty chunks changed on disk")
	}
	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the region file", len(entries))
	}
}

func TestWriteInPlace(t *testing.T) {
	directory := t.TempDir()
	original := buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:stone", "minecraft:dirt"), compression.Zlib), timestamp: 7},
		testSlot{x: 1, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:gravel"), compression.Zlib), timestamp: 8},
	)
	path := writeRegion(t, directory, original)

	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	untouched := container.Chunk(1, 0).Location
	target := container.Chunk(0, 0)
	oldLocation := target.Location

	sections, _ := target.Root.Tag.List("sections")
	for _, section := range sections.Compounds() {
		states, _ := section.Compound("block_states")
		palette, _ := states.List("palette")
		for _, entry := range palette.Compounds() {
			if name, _ := entry.String("Name"); name == "minecraft:stone" {
				entry.Set("Name", nbt.String("minecraft:granite"))
			}
		}
	}
	target.MarkDirty()
	if container.DirtyCount() != 1 {
		t.Fatalf("DirtyCount = %d, want 1", container.DirtyCount())
	}

	if err := container.Write(Options{Clock: clock.Fake(writeTime)}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	written := readFile(t, path)
	if len(written) != len(original) {
		t.Errorf("file length = %d, want %d", len(written), len(original))
	}
	if !bytes.Equal(sectorBytes(written, untouched), sectorBytes(original, untouched)) {
		t.Error("sectors of the untouched chunk changed")
	}

	reread, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("re-Read failed: %v", err)
	}
	chunk := reread.Chunk(0, 0)
	if chunk.Location != oldLocation {
		t.Errorf("location = %v, want in place at %v", chunk.Location, oldLocation)
	}
	if chunk.Timestamp != uint32(writeTime.Unix()) {
		t.Errorf("timestamp = %d, want %d", chunk.Timestamp, writeTime.Unix())
	}
	if chunk.Scheme != compression.Zlib {
		t.Errorf("scheme = %s, want zlib", chunk.Scheme)
	}
	if names := paletteNames(t, chunk.Root); !slices.Equal(names, []string{"minecraft:granite", "minecraft:dirt"}) {
		t.Errorf("palette = %v", names)
	}
	if other := reread.Chunk(1, 0); other.Timestamp != 8 || other.Location != untouched {
		t.Errorf("untouched slot header changed: %v ts %d", other.Location, other.Timestamp)
	}
}

func TestWriteRelocatesGrowingChunk(t *testing.T) {
	directory := t.TempDir()
	original := buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.None), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.None)},
		testSlot{x: 0, z: 1, marker: byte(compression.None), payload: encodePayload(t, chunkTree(t, "minecraft:dirt"), compression.None)},
	)
	path := writeRegion(t, directory, original)

	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	neighbour := container.Chunk(0, 1).Location
	grower := container.Chunk(0, 0)
	if grower.Location != (Location{Offset: 2, Sectors: 1}) || neighbour != (Location{Offset: 3, Sectors: 1}) {
		t.Fatalf("unexpected layout: %v %v", grower.Location, neighbour)
	}

	// Grow the chunk to three sectors.
	grower.Root.Tag.Set("Heightmaps", make(nbt.ByteArray, 2*SectorSize+100))
	grower.MarkDirty()
	if err := container.Write(Options{Clock: clock.Fake(writeTime)}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	written := readFile(t, path)
	if !bytes.Equal(sectorBytes(written, neighbour), sectorBytes(original, neighbour)) {
		t.Error("neighbour sectors changed")
	}
	reread, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("re-Read failed: %v", err)
	}
	if got, want := reread.Chunk(0, 0).Location, (Location{Offset: 4, Sectors: 3}); got != want {
		t.Errorf("relocated location = %v, want %v", got, want)
	}
	if len(written) != 7*SectorSize {
		t.Errorf("file length = %d, want %d", len(written), 7*SectorSize)
	}
	if len(reread.Failures()) != 0 {
		t.Errorf("failures after relocation: %v", reread.Failures())
	}
	if heightmaps, ok := reread.Chunk(0, 0).Root.Tag.Get("Heightmaps"); !ok || len(heightmaps.(nbt.ByteArray)) != 2*SectorSize+100 {
		t.Error("grown member missing after re-read")
	}
}

func TestWritePreservesCorruptSlot(t *testing.T) {
	directory := t.TempDir()
	full := encodePayload(t, chunkTree(t, "minecraft:gravel"), compression.Zlib)
	original := buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.Zlib)},
		testSlot{x: 1, z: 0, marker: byte(compression.Zlib), payload: full[:len(full)/2], timestamp: 55},
		testSlot{x: 2, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.Zlib)},
	)
	path := writeRegion(t, directory, original)

	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	failures := container.Failures()
	if len(failures) != 1 || failures[0].X != 1 || failures[0].Z != 0 {
		t.Fatalf("failures = %v, want only slot 1,0", failures)
	}
	if Classify(failures[0]) != KindCorruptChunk {
		t.Errorf("kind = %q, want %q", Classify(failures[0]), KindCorruptChunk)
	}

	corrupt := container.Chunk(1, 0)
	corrupt.MarkDirty()
	if corrupt.Dirty() {
		t.Error("MarkDirty should not apply to an undecoded chunk")
	}
	for _, x := range []int{0, 2} {
		chunk := container.Chunk(x, 0)
		chunk.Root.Tag.Set("Status", nbt.String("minecraft:full"))
		chunk.MarkDirty()
	}
	if err := container.Write(Options{Clock: clock.Fake(writeTime)}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	written := readFile(t, path)
	if !bytes.Equal(sectorBytes(written, corrupt.Location), sectorBytes(original, corrupt.Location)) {
		t.Error("corrupt slot bytes changed")
	}
	reread, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("re-Read failed: %v", err)
	}
	if chunk := reread.Chunk(1, 0); chunk.Location != corrupt.Location || chunk.Timestamp != 55 {
		t.Errorf("corrupt slot header = %v ts %d, want %v ts 55", chunk.Location, chunk.Timestamp, corrupt.Location)
	}
	for _, x := range []int{0, 2} {
		if status, _ := reread.Chunk(x, 0).Root.Tag.String("Status"); status != "minecraft:full" {
			t.Errorf("slot %d,0 lost its rewrite", x)
		}
	}
}

func TestWriteExternalChunk(t *testing.T) {
	directory := t.TempDir()
	path := writeRegion(t, directory, buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.None), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.None)},
	))
	external := filepath.Join(directory, "c.0.0.mcc")

	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	chunk := container.Chunk(0, 0)
	chunk.Root.Tag.Set("Heightmaps", make(nbt.ByteArray, (MaxInlineSectors+1)*SectorSize))
	chunk.MarkDirty()
	if err := container.Write(Options{Clock: clock.Fake(writeTime)}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := os.Stat(external); err != nil {
		t.Fatalf("external chunk file missing: %v", err)
	}
	reread, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("re-Read failed: %v", err)
	}
	big := reread.Chunk(0, 0)
	if !big.External || big.Location.Sectors != 1 || !big.Decoded() {
		t.Fatalf("external chunk = external %v location %v err %v", big.External, big.Location, big.Err)
	}
	if big.Scheme != compression.None {
		t.Errorf("external scheme = %s, want none", big.Scheme)
	}

	// Shrinking the chunk moves it back inline and removes the file.
	big.Root.Tag.Delete("Heightmaps")
	big.MarkDirty()
	if err := reread.Write(Options{Clock: clock.Fake(writeTime)}); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	if _, err := os.Stat(external); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale external file still present: %v", err)
	}
	final, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("final Read failed: %v", err)
	}
	if final.Chunk(0, 0).External || !final.Chunk(0, 0).Decoded() {
		t.Errorf("chunk should be inline and decoded, got external %v err %v", final.Chunk(0, 0).External, final.Chunk(0, 0).Err)
	}
}

func TestWriteToOtherPath(t *testing.T) {
	source := t.TempDir()
	original := buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.Zlib)},
	)
	path := writeRegion(t, source, original)
	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	destination := filepath.Join(t.TempDir(), "r.0.0.mca")
	if err := Write(destination, container, Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Equal(readFile(t, destination), original) {
		t.Error("copy of an untouched container differs from the original")
	}
	if container.Path != destination {
		t.Errorf("container.Path = %q, want %q", container.Path, destination)
	}
}

func TestWriteUnwritable(t *testing.T) {
	directory := t.TempDir()
	path := writeRegion(t, directory, buildContainer(t,
		testSlot{x: 0, z: 0, marker: byte(compression.Zlib), payload: encodePayload(t, chunkTree(t, "minecraft:stone"), compression.Zlib)},
	))
	container, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	container.Chunk(0, 0).MarkDirty()

	missing := filepath.Join(directory, "missing", "r.0.0.mca")
	if err := Write(missing, container, Options{}); !errors.Is(err, ErrUnwritableContainer) {
		t.Errorf("Write error = %v, want ErrUnwritableContainer", err)
	}
	if !container.Chunk(0, 0).Dirty() {
		t.Error("failed write should leave the chunk dirty")
	}
}

func TestNewContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.-1.2.mca")
	container, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if container.RegionX != -1 || container.RegionZ != 2 {
		t.Errorf("region = %d,%d, want -1,2", container.RegionX, container.RegionZ)
	}

	if _, err := container.SetChunk(32, 0, chunkTree(t), compression.Zlib); err == nil {
		t.Error("SetChunk outside the grid should fail")
	}
	if _, err := container.SetChunk(0, 0, chunkTree(t), compression.Custom); !errors.Is(err, compression.ErrUnsupportedScheme) {
		t.Errorf("SetChunk with custom scheme error = %v, want ErrUnsupportedScheme", err)
	}
	for _, slot := range []struct {
		x, z   int
		scheme compression.Scheme
	}{{0, 0, compression.Zlib}, {31, 0, compression.LZ4}, {4, 9, compression.GZip}} {
		if _, err := container.SetChunk(slot.x, slot.z, chunkTree(t, "minecraft:stone"), slot.scheme); err != nil {
			t.Fatalf("SetChunk(%d, %d) failed: %v", slot.x, slot.z, err)
		}
	}
	if err := container.Write(Options{Clock: clock.Fake(writeTime)}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	written := readFile(t, path)
	if len(written) != 5*SectorSize {
		t.Errorf("file length = %d, want %d", len(written), 5*SectorSize)
	}
	reread, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	wantOffsets := map[[2]int]uint32{{0, 0}: 2, {31, 0}: 3, {4, 9}: 4}
	for slot, offset := range wantOffsets {
		chunk := reread.Chunk(slot[0], slot[1])
		if chunk == nil || !chunk.Decoded() {
			t.Fatalf("slot %v missing or undecoded", slot)
		}
		if chunk.Location.Offset != offset || chunk.Location.Sectors != 1 {
			t.Errorf("slot %v location = %v, want %d+1", slot, chunk.Location, offset)
		}
		if chunk.Timestamp != uint32(writeTime.Unix()) {
			t.Errorf("slot %v timestamp = %d", slot, chunk.Timestamp)
		}
	}
	if got := reread.Chunk(31, 0).Scheme; got != compression.LZ4 {
		t.Errorf("slot 31,0 scheme = %s, want lz4", got)
	}
}
