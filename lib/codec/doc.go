// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the project's standard CBOR encoding
// configuration.
//
// Run reports are written as JSON for people and scripts, or as CBOR
// when they are archived alongside a world backup. This package holds
// the shared CBOR modes so every writer encodes identically. The
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. The same
// report always produces identical bytes.
//
//	data, err := codec.Marshal(report)
//
// Report files are streamed rather than built in memory:
//
//	err := codec.NewEncoder(bufferedFile).Encode(report)
//	err = codec.NewDecoder(bufferedFile).Decode(&report)
//
// # Struct Tag Rules
//
// Report types carry `json` tags only. fxamacker/cbor v2 reads `json`
// tags when `cbor` tags are absent, so one tag controls field naming
// and omitempty for both formats. Never put both on the same field.
package codec
