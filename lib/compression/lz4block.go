// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/OneOfOne/xxhash"
	"github.com/pierrec/lz4/v4"
)

// LZ4 block stream layout. Each block starts with a 21-byte header:
//
//	magic           8 bytes  "LZ4Block"
//	token           1 byte   method | level
//	compressed len  4 bytes  little-endian
//	original len    4 bytes  little-endian
//	checksum        4 bytes  little-endian, XXH32 of the original bytes
//
// The stream ends with a block whose lengths and checksum are all zero.
const (
	lz4HeaderLength = 21

	lz4MethodRaw = 0x10
	lz4MethodLZ4 = 0x20

	// A level of 6 means blocks of at most 1<<(10+6) bytes.
	lz4Level     = 6
	lz4BlockSize = 1 << (10 + lz4Level)

	lz4ChecksumSeed = 0x9747b28c
	lz4ChecksumMask = 0x0FFFFFFF
)

var lz4Magic = []byte("LZ4Block")

func lz4Checksum(data []byte) uint32 {
	return xxhash.Checksum32S(data, lz4ChecksumSeed) & lz4ChecksumMask
}

func compressLZ4Stream(data []byte) ([]byte, error) {
	blockCount := (len(data) + lz4BlockSize - 1) / lz4BlockSize
	output := make([]byte, 0, len(data)+(blockCount+1)*lz4HeaderLength)
	scratch := make([]byte, lz4.CompressBlockBound(lz4BlockSize))

	for start := 0; start < len(data); start += lz4BlockSize {
		block := data[start:min(start+lz4BlockSize, len(data))]

		written, err := lz4.CompressBlock(block, scratch, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4 compress: %v", ErrCorruptChunk, err)
		}

		// CompressBlock returns 0 for incompressible input. Such
		// blocks are stored raw.
		method, payload := byte(lz4MethodLZ4), scratch[:written]
		if written == 0 || written >= len(block) {
			method, payload = lz4MethodRaw, block
		}
		output = appendLZ4Header(output, method, len(payload), len(block), lz4Checksum(block))
		output = append(output, payload...)
	}

	return appendLZ4Header(output, lz4MethodRaw, 0, 0, 0), nil
}

func appendLZ4Header(output []byte, method byte, compressedLength, originalLength int, checksum uint32) []byte {
	output = append(output, lz4Magic...)
	output = append(output, method|lz4Level)
	output = binary.LittleEndian.AppendUint32(output, uint32(compressedLength))
	output = binary.LittleEndian.AppendUint32(output, uint32(originalLength))
	return binary.LittleEndian.AppendUint32(output, checksum)
}

func decompressLZ4Stream(data []byte) ([]byte, error) {
	var output []byte
	offset := 0

	for {
		// A stream that stops cleanly at a block boundary is accepted
		// even without the empty terminating block.
		if offset == len(data) {
			return output, nil
		}
		if len(data)-offset < lz4HeaderLength {
			return nil, fmt.Errorf("%w: lz4: truncated block header at offset %d", ErrCorruptChunk, offset)
		}
		header := data[offset : offset+lz4HeaderLength]
		if !bytes.Equal(header[:len(lz4Magic)], lz4Magic) {
			return nil, fmt.Errorf("%w: lz4: bad block magic at offset %d", ErrCorruptChunk, offset)
		}

		token := header[8]
		method := token & 0xF0
		level := int(token & 0x0F)
		compressedLength := int(int32(binary.LittleEndian.Uint32(header[9:])))
		originalLength := int(int32(binary.LittleEndian.Uint32(header[13:])))
		checksum := binary.LittleEndian.Uint32(header[17:])
		offset += lz4HeaderLength

		if method != lz4MethodRaw && method != lz4MethodLZ4 {
			return nil, fmt.Errorf("%w: lz4: unknown block method 0x%02x", ErrCorruptChunk, method)
		}
		maxBlock := 1 << (10 + level)
		if originalLength < 0 || originalLength > maxBlock || compressedLength < 0 ||
			(originalLength == 0) != (compressedLength == 0) ||
			(method == lz4MethodRaw && originalLength != compressedLength) {
			return nil, fmt.Errorf("%w: lz4: inconsistent block lengths %d/%d", ErrCorruptChunk, compressedLength, originalLength)
		}

		if originalLength == 0 {
			if checksum != 0 {
				return nil, fmt.Errorf("%w: lz4: non-zero checksum on end block", ErrCorruptChunk)
			}
			return output, nil
		}

		if len(data)-offset < compressedLength {
			return nil, fmt.Errorf("%w: lz4: block of %d bytes truncated to %d", ErrCorruptChunk, compressedLength, len(data)-offset)
		}
		payload := data[offset : offset+compressedLength]
		offset += compressedLength

		start := len(output)
		output = append(output, make([]byte, originalLength)...)
		block := output[start:]
		if method == lz4MethodRaw {
			copy(block, payload)
		} else {
			read, err := lz4.UncompressBlock(payload, block)
			if err != nil {
				return nil, fmt.Errorf("%w: lz4 decompress: %v", ErrCorruptChunk, err)
			}
			if read != originalLength {
				return nil, fmt.Errorf("%w: lz4 decompress: got %d bytes, expected %d", ErrCorruptChunk, read, originalLength)
			}
		}

		if lz4Checksum(block) != checksum {
			return nil, fmt.Errorf("%w: lz4: block checksum mismatch", ErrCorruptChunk)
		}
	}
}
