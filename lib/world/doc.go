// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package world finds the region containers of a world save and copies
// world directories.
//
// A save keeps the primary dimension's containers in a top-level
// directory named "region". Other dimensions live in directories whose
// names contain "DIM" (DIM-1 for the nether, DIM1 for the end), each
// with its own region directory. Directories with other names, such as
// entities and poi, are not searched.
package world
