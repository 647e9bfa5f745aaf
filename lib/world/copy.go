// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package world

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrDestinationInsideSource reports a copy whose destination lies
// within the tree being copied.
var ErrDestinationInsideSource = errors.New("destination is inside the source directory")

// Copy copies the directory tree at source to destination, replacing
// files that already exist there. Permission bits are preserved and
// symbolic links are recreated rather than followed.
func Copy(source, destination string) error {
	source, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("resolving source: %w", err)
	}
	destination, err = filepath.Abs(destination)
	if err != nil {
		return fmt.Errorf("resolving destination: %w", err)
	}
	if relative, err := filepath.Rel(source, destination); err == nil &&
		relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return fmt.Errorf("copying %s to %s: %w", source, destination, ErrDestinationInsideSource)
	}

	return filepath.WalkDir(source, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, relative)

		info, err := entry.Info()
		if err != nil {
			return err
		}
		switch {
		case entry.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			return nil
		case info.Mode()&fs.ModeSymlink != 0:
			return copySymlink(path, target)
		case info.Mode().IsRegular():
			return copyFile(path, target, info.Mode().Perm())
		default:
			// Sockets, devices and pipes have no place in a save.
			return nil
		}
	})
}

func copyFile(source, target string, mode fs.FileMode) error {
	input, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening %s: %w", source, err)
	}
	defer input.Close()

	// A read-only file from an earlier copy cannot be reopened for
	// writing, so it is replaced rather than truncated.
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replacing %s: %w", target, err)
	}
	output, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(output, input); err != nil {
		output.Close()
		return fmt.Errorf("copying %s: %w", source, err)
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	// OpenFile applies the umask.
	return os.Chmod(target, mode)
}

func copySymlink(source, target string) error {
	link, err := os.Readlink(source)
	if err != nil {
		return fmt.Errorf("reading link %s: %w", source, err)
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replacing %s: %w", target, err)
	}
	if err := os.Symlink(link, target); err != nil {
		return fmt.Errorf("creating link %s: %w", target, err)
	}
	return nil
}
