// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Decompress unwraps a payload compressed with scheme. For [None] the
// input is returned unchanged (no copy).
func Decompress(data []byte, scheme Scheme) ([]byte, error) {
	switch scheme {
	case None:
		return data, nil

	case GZip:
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: gzip header: %v", ErrCorruptChunk, err)
		}
		defer reader.Close()
		return readAll(reader, "gzip")

	case Zlib:
		reader, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib header: %v", ErrCorruptChunk, err)
		}
		defer reader.Close()
		return readAll(reader, "zlib")

	case LZ4:
		return decompressLZ4Stream(data)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

// Compress wraps data using scheme. For [None] the input is returned
// unchanged (no copy).
func Compress(data []byte, scheme Scheme) ([]byte, error) {
	switch scheme {
	case None:
		return data, nil

	case GZip:
		var buffer bytes.Buffer
		writer := gzip.NewWriter(&buffer)
		return finishWriter(writer, &buffer, data, "gzip")

	case Zlib:
		var buffer bytes.Buffer
		writer := zlib.NewWriter(&buffer)
		return finishWriter(writer, &buffer, data, "zlib")

	case LZ4:
		return compressLZ4Stream(data)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

func readAll(reader io.Reader, name string) ([]byte, error) {
	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s stream: %v", ErrCorruptChunk, name, err)
	}
	return decompressed, nil
}

func finishWriter(writer io.WriteCloser, buffer *bytes.Buffer, data []byte, name string) ([]byte, error) {
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %s compress: %v", ErrCorruptChunk, name, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s compress: %v", ErrCorruptChunk, name, err)
	}
	return buffer.Bytes(), nil
}
