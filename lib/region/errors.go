// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/massreplace/lib/compression"
	"github.com/bureau-foundation/massreplace/lib/nbt"
)

var (
	// ErrUnreadableContainer reports a container whose file or header
	// could not be read. The whole file is skipped.
	ErrUnreadableContainer = errors.New("unreadable container")

	// ErrUnwritableContainer reports a failure writing a container
	// back to disk. The original file is left in place.
	ErrUnwritableContainer = errors.New("unwritable container")
)

// ChunkError describes one slot that could not be decoded or
// re-encoded. The slot's original bytes are preserved.
type ChunkError struct {
	// X and Z are the slot coordinates within the container.
	X, Z int

	// ChunkX and ChunkZ are the absolute chunk coordinates.
	ChunkX, ChunkZ int

	Err error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d,%d (slot %d,%d): %v", e.ChunkX, e.ChunkZ, e.X, e.Z, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Kind names the category of a failure for logs and run reports.
type Kind string

const (
	KindNone                   Kind = ""
	KindMalformedTag           Kind = "malformed-tag"
	KindInvalidEncoding        Kind = "invalid-encoding"
	KindCorruptChunk           Kind = "corrupt-chunk"
	KindUnsupportedCompression Kind = "unsupported-compression"
	KindUnreadableContainer    Kind = "unreadable-container"
	KindUnwritableContainer    Kind = "unwritable-container"
	KindUnknown                Kind = "unknown"
)

// Classify returns the Kind of err.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnreadableContainer):
		return KindUnreadableContainer
	case errors.Is(err, ErrUnwritableContainer):
		return KindUnwritableContainer
	case errors.Is(err, nbt.ErrInvalidEncoding):
		return KindInvalidEncoding
	case errors.Is(err, nbt.ErrMalformedTag),
		errors.Is(err, nbt.ErrElementType),
		errors.Is(err, nbt.ErrStringTooLong):
		return KindMalformedTag
	case errors.Is(err, compression.ErrUnsupportedScheme):
		return KindUnsupportedCompression
	case errors.Is(err, compression.ErrCorruptChunk):
		return KindCorruptChunk
	default:
		return KindUnknown
	}
}

// ChunkLevel reports whether a failure of this kind is confined to
// one chunk. Such failures never abort the file.
func (k Kind) ChunkLevel() bool {
	switch k {
	case KindMalformedTag, KindInvalidEncoding, KindCorruptChunk, KindUnsupportedCompression:
		return true
	default:
		return false
	}
}
