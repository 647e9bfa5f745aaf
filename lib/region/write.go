// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/massreplace/lib/clock"
	"github.com/bureau-foundation/massreplace/lib/compression"
	"github.com/bureau-foundation/massreplace/lib/nbt"
)

// rewrite is the placement plan for one dirty chunk.
type rewrite struct {
	chunk    *Chunk
	payload  []byte
	sectors  uint32
	external bool
	location Location
}

// Write writes the container back to the file it was read from. When
// no chunk is dirty the file is left untouched.
func (c *Container) Write(options Options) error {
	return Write(c.Path, c, options)
}

// Write writes container to path. Dirty chunks are re-encoded with the
// scheme they were read with and placed in their old sectors when they
// still fit, otherwise in the first free run large enough or at the
// end of the file. Every other byte of the original file is carried
// over unchanged.
//
// When path is the container's own file and no chunk is dirty, Write
// does nothing. After a successful write the container describes path.
func Write(path string, container *Container, options Options) error {
	logger := options.logger()
	sameFile := filepath.Clean(path) == filepath.Clean(container.Path)

	rewrites := container.encodeDirty(logger)
	if len(rewrites) == 0 && sameFile {
		return nil
	}

	header := container.Header
	image := container.data
	if len(rewrites) > 0 {
		container.place(rewrites)
		image = container.render(rewrites, &header, clock.OrReal(options.Clock))
	}

	directory := filepath.Dir(path)
	for _, r := range rewrites {
		if !r.external {
			continue
		}
		chunkX, chunkZ := ChunkPos(container.RegionX, container.RegionZ, r.chunk.X, r.chunk.Z)
		if err := writeFileAtomic(filepath.Join(directory, ExternalFileName(chunkX, chunkZ)), r.payload, 0o644); err != nil {
			return fmt.Errorf("%w: %v", ErrUnwritableContainer, err)
		}
	}
	if !sameFile {
		for chunk := range container.Chunks() {
			if chunk.dirty || chunk.external == nil {
				continue
			}
			chunkX, chunkZ := ChunkPos(container.RegionX, container.RegionZ, chunk.X, chunk.Z)
			if err := writeFileAtomic(filepath.Join(directory, ExternalFileName(chunkX, chunkZ)), chunk.external, 0o644); err != nil {
				return fmt.Errorf("%w: %v", ErrUnwritableContainer, err)
			}
		}
	}

	if err := writeFileAtomic(path, image, fileMode(path, container.Path)); err != nil {
		return fmt.Errorf("%w: %v", ErrUnwritableContainer, err)
	}

	for _, r := range rewrites {
		if !r.chunk.External || r.external {
			continue
		}
		// The chunk moved back inline; its external file is stale.
		chunkX, chunkZ := ChunkPos(container.RegionX, container.RegionZ, r.chunk.X, r.chunk.Z)
		stale := filepath.Join(directory, ExternalFileName(chunkX, chunkZ))
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("removing stale external chunk file", "file", stale, "error", err)
		}
	}

	container.Path = path
	container.data = image
	container.Header = header
	for _, r := range rewrites {
		chunk := r.chunk
		chunk.Location = r.location
		chunk.Timestamp = header.Timestamps[chunk.Index()]
		chunk.External = r.external
		chunk.external = nil
		if r.external {
			chunk.external = r.payload
		}
		chunk.dirty = false
	}
	return nil
}

// encodeDirty encodes and compresses every dirty chunk. A chunk that
// cannot be encoded is recorded as a failure and keeps its old bytes.
func (c *Container) encodeDirty(logger *slog.Logger) []*rewrite {
	var rewrites []*rewrite
	for chunk := range c.Chunks() {
		if !chunk.dirty {
			continue
		}
		raw, err := nbt.Encode(chunk.Root)
		if err != nil {
			c.fail(chunk, fmt.Errorf("encoding: %w", err), logger)
			continue
		}
		payload, err := compression.Compress(raw, chunk.Scheme)
		if err != nil {
			c.fail(chunk, err, logger)
			continue
		}

		r := &rewrite{chunk: chunk, payload: payload}
		sectors := sectorsFor(len(payload) + payloadPrefix)
		if sectors > MaxInlineSectors {
			r.external = true
			sectors = 1
		}
		r.sectors = uint32(sectors)
		rewrites = append(rewrites, r)
	}
	return rewrites
}

// place assigns a location to every rewrite. All sizes are known
// before any sector is handed out.
func (c *Container) place(rewrites []*rewrite) {
	allocator := NewSectorAllocator()
	for chunk := range c.Chunks() {
		allocator.Reserve(chunk.Location.Offset, uint32(chunk.Location.Sectors))
	}
	for _, r := range rewrites {
		allocator.Free(r.chunk.Location.Offset, uint32(r.chunk.Location.Sectors))
	}
	// Re-claim untouched chunks in case a freed range overlapped one.
	for chunk := range c.Chunks() {
		if !chunk.dirty {
			allocator.Reserve(chunk.Location.Offset, uint32(chunk.Location.Sectors))
		}
	}

	var relocating []*rewrite
	for _, r := range rewrites {
		old := r.chunk.Location
		if old.Offset >= HeaderSectors && r.sectors <= uint32(old.Sectors) {
			allocator.Reserve(old.Offset, r.sectors)
			r.location = Location{Offset: old.Offset, Sectors: uint8(r.sectors)}
			continue
		}
		relocating = append(relocating, r)
	}
	for _, r := range relocating {
		r.location = Location{Offset: allocator.Allocate(r.sectors), Sectors: uint8(r.sectors)}
	}
}

// render builds the new file image from the original bytes, the
// placed rewrites, and the updated header.
func (c *Container) render(rewrites []*rewrite, header *Header, source clock.Clock) []byte {
	image := make([]byte, max(len(c.data), HeaderSize))
	copy(image, c.data)

	now := uint32(source.Now().Unix())
	for _, r := range rewrites {
		end := int(r.location.End()) * SectorSize
		if end > len(image) {
			image = append(image, make([]byte, end-len(image))...)
		}
		slot := image[int(r.location.Offset)*SectorSize : end]
		clear(slot)

		marker := byte(r.chunk.Scheme)
		inline := r.payload
		if r.external {
			marker |= externalFlag
			inline = nil
		}
		binary.BigEndian.PutUint32(slot, uint32(len(inline)+1))
		slot[4] = marker
		copy(slot[payloadPrefix:], inline)

		index := r.chunk.Index()
		header.Locations[index] = r.location
		header.Timestamps[index] = now
	}
	header.Encode(image)
	return image
}

// fileMode returns the permission bits of the first path that exists.
func fileMode(paths ...string) fs.FileMode {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil {
			return info.Mode().Perm()
		}
	}
	return 0o644
}
