// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package region reads and writes region containers (.mca files), the
// files a world save divides its chunks into. One container holds up
// to 1024 chunks arranged as a 32x32 grid.
//
// # Layout
//
// The first 8192 bytes are two tables of 1024 big-endian u32 entries.
// The first table packs each slot's location as offset<<8 | count,
// both measured in 4096-byte sectors; the second holds each slot's
// last-modified time in Unix seconds. An all-zero location means the
// slot is empty. Slot (x, z) is entry x + 32*z.
//
// A chunk payload starts at its first sector with a big-endian u32
// length (counting the marker byte), a one-byte [compression.Scheme]
// marker, and the compressed tree. The remainder of its last sector is
// zero padding. A marker with the 0x80 bit set means the compressed
// bytes live in a separate c.<chunkX>.<chunkZ>.mcc file next to the
// container instead, which the game uses for chunks larger than 255
// sectors.
//
// # Failure policy
//
// [Read] fails only when the container itself cannot be read
// ([ErrUnreadableContainer]). A slot whose bytes cannot be decoded is
// reported as a [ChunkError] through [Container.Failures] and keeps its
// original bytes on write-back. [Container.Write] re-encodes only the
// chunks marked dirty, leaves every other sector byte-identical, and
// replaces the file atomically.
package region
