// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"encoding/binary"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/massreplace/lib/clock"
	"github.com/bureau-foundation/massreplace/lib/compression"
	"github.com/bureau-foundation/massreplace/lib/nbt"
)

// Options configures reading and writing containers.
type Options struct {
	// Logger receives per-chunk warnings. Nil discards them.
	Logger *slog.Logger

	// Clock stamps rewritten chunks. Nil means the wall clock.
	Clock clock.Clock
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Container is a region file materialized in memory.
type Container struct {
	// Path is the file the container was read from.
	Path string

	// RegionX and RegionZ are parsed from the file name.
	RegionX, RegionZ int

	// Header is the header as it was read, or as last written.
	Header Header

	data     []byte
	chunks   [SlotCount]*Chunk
	failures []*ChunkError
}

// Chunk is one populated slot.
type Chunk struct {
	// X and Z are the slot coordinates within the container.
	X, Z int

	Location  Location
	Timestamp uint32

	// Scheme is the compression the payload was read with and will
	// be written with.
	Scheme compression.Scheme

	// External reports whether the payload lives in a .mcc file.
	External bool

	// Root is the decoded tree. Its Tag is nil when Err is set.
	Root nbt.Root

	// Err is the reason the slot could not be decoded, or nil.
	Err error

	// external holds the compressed bytes read from the .mcc file.
	external []byte
	dirty    bool
}

// Decoded reports whether the chunk's tree is available.
func (c *Chunk) Decoded() bool {
	return c.Err == nil && c.Root.Tag != nil
}

// MarkDirty schedules the chunk for re-encoding on the next write.
// It has no effect on a chunk that failed to decode.
func (c *Chunk) MarkDirty() {
	if c.Decoded() {
		c.dirty = true
	}
}

// Dirty reports whether the chunk will be re-encoded on write.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// Index returns the chunk's header table index.
func (c *Chunk) Index() int {
	return SlotIndex(c.X, c.Z)
}

// Read loads a container and decodes every populated slot.
func Read(path string, options Options) (*Container, error) {
	regionX, regionZ, err := ParseFileName(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableContainer, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableContainer, err)
	}
	return parse(path, regionX, regionZ, data, options)
}

// New returns an empty container for path. Nothing is written until
// a chunk is stored and Write is called.
func New(path string) (*Container, error) {
	regionX, regionZ, err := ParseFileName(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return &Container{Path: path, RegionX: regionX, RegionZ: regionZ}, nil
}

func parse(path string, regionX, regionZ int, data []byte, options Options) (*Container, error) {
	container := &Container{Path: path, RegionX: regionX, RegionZ: regionZ, data: data}

	// The game creates zero-length files for regions it has not
	// populated yet.
	if len(data) == 0 {
		return container, nil
	}
	header, err := ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableContainer, path, err)
	}
	container.Header = *header

	logger := options.logger()
	claimed := NewSectorAllocator()
	for index, location := range header.Locations {
		if location.IsEmpty() {
			continue
		}
		x, z := SlotCoords(index)
		chunk := &Chunk{X: x, Z: z, Location: location, Timestamp: header.Timestamps[index]}
		container.chunks[index] = chunk

		if err := container.decodeSlot(chunk, claimed); err != nil {
			container.fail(chunk, err, logger)
		}
	}
	return container, nil
}

func (c *Container) decodeSlot(chunk *Chunk, claimed *SectorAllocator) error {
	location := chunk.Location
	if location.Offset < HeaderSectors {
		return fmt.Errorf("%w: sector offset %d overlaps the header", compression.ErrCorruptChunk, location.Offset)
	}
	if location.Sectors == 0 {
		return fmt.Errorf("%w: sector count is zero", compression.ErrCorruptChunk)
	}
	start := int(location.Offset) * SectorSize
	if start+payloadPrefix > len(c.data) {
		return fmt.Errorf("%w: sector %d is past the end of the file", compression.ErrCorruptChunk, location.Offset)
	}
	if !claimed.Reserve(location.Offset, uint32(location.Sectors)) {
		return fmt.Errorf("%w: sectors %s overlap another chunk", compression.ErrCorruptChunk, location)
	}

	length := int(binary.BigEndian.Uint32(c.data[start:]))
	if length == 0 || length+4 > int(location.Sectors)*SectorSize {
		return fmt.Errorf("%w: declared length %d does not fit %d sectors", compression.ErrCorruptChunk, length, location.Sectors)
	}
	if start+4+length > len(c.data) {
		return fmt.Errorf("%w: payload of %d bytes truncated by end of file", compression.ErrCorruptChunk, length)
	}

	marker := c.data[start+4]
	chunk.Scheme = compression.Scheme(marker &^ externalFlag)
	chunk.External = marker&externalFlag != 0
	payload := c.data[start+payloadPrefix : start+4+length]

	if chunk.External {
		chunkX, chunkZ := ChunkPos(c.RegionX, c.RegionZ, chunk.X, chunk.Z)
		external, err := os.ReadFile(filepath.Join(filepath.Dir(c.Path), ExternalFileName(chunkX, chunkZ)))
		if err != nil {
			return fmt.Errorf("%w: external payload: %v", compression.ErrCorruptChunk, err)
		}
		chunk.external = external
		payload = external
	}

	raw, err := compression.Decompress(payload, chunk.Scheme)
	if err != nil {
		return err
	}
	root, err := nbt.Decode(raw)
	if err != nil {
		return err
	}
	chunk.Root = root
	return nil
}

func (c *Container) fail(chunk *Chunk, err error, logger *slog.Logger) {
	chunkX, chunkZ := ChunkPos(c.RegionX, c.RegionZ, chunk.X, chunk.Z)
	chunkError := &ChunkError{X: chunk.X, Z: chunk.Z, ChunkX: chunkX, ChunkZ: chunkZ, Err: err}
	chunk.Err = chunkError
	chunk.Root = nbt.Root{}
	chunk.dirty = false
	c.failures = append(c.failures, chunkError)

	logger.Warn("skipping chunk",
		"file", c.Path,
		"x", chunk.X,
		"z", chunk.Z,
		"kind", string(Classify(err)),
		"error", err,
	)
}

// SetChunk stores root in slot (x, z) and marks it dirty. A chunk
// already in the slot, decoded or not, is replaced and its sectors are
// reused or released on the next write.
func (c *Container) SetChunk(x, z int, root nbt.Root, scheme compression.Scheme) (*Chunk, error) {
	if x < 0 || x >= GridSize || z < 0 || z >= GridSize {
		return nil, fmt.Errorf("slot %d,%d is outside the %dx%d grid", x, z, GridSize, GridSize)
	}
	if root.Tag == nil {
		return nil, fmt.Errorf("slot %d,%d: nil root compound", x, z)
	}
	if !scheme.Supported() {
		return nil, fmt.Errorf("slot %d,%d: %w: %s", x, z, compression.ErrUnsupportedScheme, scheme)
	}

	index := SlotIndex(x, z)
	chunk := c.chunks[index]
	if chunk == nil {
		chunk = &Chunk{X: x, Z: z}
		c.chunks[index] = chunk
	}
	chunk.Root = root
	chunk.Scheme = scheme
	chunk.Err = nil
	chunk.dirty = true
	return chunk, nil
}

// Chunk returns the chunk in slot (x, z), or nil if the slot is empty.
func (c *Container) Chunk(x, z int) *Chunk {
	if x < 0 || x >= GridSize || z < 0 || z >= GridSize {
		return nil
	}
	return c.chunks[SlotIndex(x, z)]
}

// Chunks yields every populated slot in header order, including slots
// that failed to decode.
func (c *Container) Chunks() iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for _, chunk := range c.chunks {
			if chunk == nil {
				continue
			}
			if !yield(chunk) {
				return
			}
		}
	}
}

// Len returns the number of populated slots.
func (c *Container) Len() int {
	count := 0
	for range c.Chunks() {
		count++
	}
	return count
}

// Failures returns the slots that could not be decoded on read or
// re-encoded on write, in the order they were found.
func (c *Container) Failures() []*ChunkError {
	return c.failures
}

// DirtyCount returns how many chunks will be re-encoded on write.
func (c *Container) DirtyCount() int {
	count := 0
	for chunk := range c.Chunks() {
		if chunk.dirty {
			count++
		}
	}
	return count
}
