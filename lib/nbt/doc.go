// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbt implements the Named Binary Tag format: the
// self-describing, big-endian tree encoding used for every chunk
// record inside a region container.
//
// The tree is modelled as a closed sum type. [Tag] is an interface
// with an unexported method, so the only implementations are the
// twelve payload variants defined here:
//
//   - scalars: [Byte], [Short], [Int], [Long], [Float], [Double]
//   - arrays: [ByteArray], [IntArray], [LongArray]
//   - [String], stored as Go (UTF-8) text and encoded as Java
//     modified UTF-8 on the wire
//   - [*List], a homogeneous sequence typed by its element [TagID]
//   - [*Compound], an ordered mapping from unique names to tags
//
// The end marker ([TagEnd]) is a type identifier only: it terminates
// compounds and types empty lists, and never appears as a value.
// Traversal code switches on the concrete variant instead of probing
// for shapes at runtime:
//
//	switch value := tag.(type) {
//	case *nbt.Compound:
//	    ...
//	case nbt.String:
//	    ...
//	}
//
// [Decode] and [Encode] operate on a [Root], the single named
// compound at the top of every chunk record. Decoding is strict:
// truncated or structurally impossible input fails with
// [ErrMalformedTag], and string payloads that are not valid modified
// UTF-8 fail with [ErrInvalidEncoding] rather than being repaired.
// Encoding is canonical, so Encode(Decode(b)) reproduces b for any b
// that this package produced.
//
// This package depends on no other massreplace packages.
package nbt
