// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package world

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bureau-foundation/massreplace/lib/region"
)

const (
	dimensionMarker = "DIM"
	regionMarker    = "region"
)

// Discover returns the absolute paths of every region container under
// root, sorted. It reads directory listings only, never file contents.
func Discover(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving world directory: %w", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing world directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		directory := filepath.Join(root, entry.Name())
		switch {
		case strings.Contains(entry.Name(), dimensionMarker):
			children, err := os.ReadDir(directory)
			if err != nil {
				return nil, fmt.Errorf("listing dimension %s: %w", entry.Name(), err)
			}
			for _, child := range children {
				if !child.IsDir() || !strings.Contains(child.Name(), regionMarker) {
					continue
				}
				found, err := containers(filepath.Join(directory, child.Name()))
				if err != nil {
					return nil, err
				}
				paths = append(paths, found...)
			}

		case strings.Contains(entry.Name(), regionMarker):
			found, err := containers(directory)
			if err != nil {
				return nil, err
			}
			paths = append(paths, found...)
		}
	}

	slices.Sort(paths)
	return paths, nil
}

// containers lists the region files directly inside directory.
func containers(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("listing region directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), region.Extension) {
			continue
		}
		paths = append(paths, filepath.Join(directory, entry.Name()))
	}
	return paths, nil
}
