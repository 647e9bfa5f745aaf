// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compression wraps and unwraps chunk payloads stored in region
// containers. Each payload is preceded by a one-byte [Scheme] marker;
// [Decompress] and [Compress] dispatch on it.
//
// gzip and zlib use klauspost/compress. The LZ4 scheme is the block
// stream framing written by the game (an "LZ4Block" header per 64 KiB
// block with an XXH32 checksum of the uncompressed bytes), built on the
// pierrec/lz4 block codec.
//
// Every decompression failure wraps [ErrCorruptChunk] so callers can
// degrade to skipping the chunk. Schemes this package cannot handle
// return [ErrUnsupportedScheme].
package compression
