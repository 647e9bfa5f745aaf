// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content digests for region files.
//
// Run reports record the digest of every container before and after a
// replacement so that an operator can tell which files a run actually
// changed, and later confirm a backup matches what the run saw.
//
// The API surface is small:
//
//   - [HashFile] streams a file through BLAKE3 with constant memory
//   - [HashBytes] digests an in-memory buffer
//   - [FormatDigest] and [ParseDigest] convert to and from the
//     canonical lowercase hex form used in reports and log output
package binhash
