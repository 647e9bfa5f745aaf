// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"errors"
	"fmt"
)

// Scheme identifies how a chunk payload is compressed. Values are the
// marker bytes stored in region files and must not change.
type Scheme uint8

const (
	// GZip is RFC 1952 gzip. The game can read it but never writes it.
	GZip Scheme = 1

	// Zlib is RFC 1950 zlib, the default for every released version.
	Zlib Scheme = 2

	// None stores the encoded tree without compression.
	None Scheme = 3

	// LZ4 is the LZ4 block stream format, selectable since 1.20.5.
	LZ4 Scheme = 4

	// Custom marks a payload prefixed with a namespaced algorithm
	// name. Its contents are opaque to this package.
	Custom Scheme = 127
)

var (
	// ErrCorruptChunk reports a payload that could not be
	// decompressed or compressed.
	ErrCorruptChunk = errors.New("corrupt chunk")

	// ErrUnsupportedScheme reports a marker byte naming a scheme this
	// package does not implement.
	ErrUnsupportedScheme = errors.New("unsupported compression scheme")
)

// String returns the lower-case scheme name.
func (scheme Scheme) String() string {
	switch scheme {
	case GZip:
		return "gzip"
	case Zlib:
		return "zlib"
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(scheme))
	}
}

// Supported reports whether Compress and Decompress handle the scheme.
func (scheme Scheme) Supported() bool {
	switch scheme {
	case GZip, Zlib, None, LZ4:
		return true
	default:
		return false
	}
}

// ParseScheme parses a scheme from its [Scheme.String] form.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "gzip":
		return GZip, nil
	case "zlib", "deflate":
		return Zlib, nil
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "custom":
		return Custom, nil
	default:
		return 0, fmt.Errorf("unknown compression scheme: %q", name)
	}
}
