// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package replacer runs the palette rules over region files.
//
// [ProcessFile] handles one container: read every slot, rewrite the
// palettes of each decoded chunk, and write the container back when
// anything matched. [Run] does the same for a list of files on a
// bounded worker pool. Files are independent, so a file that cannot be
// read or written is reported in its [FileResult] and the run moves on.
package replacer
