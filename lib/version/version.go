// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Release builds stamp version information with -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/massreplace/lib/version.Version=1.0.0 \
//	  -X github.com/bureau-foundation/massreplace/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/massreplace
//
// A plain go build or go install leaves the ldflags variables at their
// defaults; the commit and build time then come from the VCS stamp the
// go command embeds in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the release version recorded in run reports.
	Version = "0.1.0-dev"
)

// stamp is the build provenance shown by Info.
type stamp struct {
	commit string
	dirty  bool
	built  string
}

func current() stamp {
	s := stamp{commit: GitCommit, dirty: GitDirty == "true", built: BuildTime}
	if s.commit != "unknown" {
		return s
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return s
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			s.commit = setting.Value
			if len(s.commit) > 12 {
				s.commit = s.commit[:12]
			}
		case "vcs.modified":
			s.dirty = setting.Value == "true"
		case "vcs.time":
			s.built = setting.Value
		}
	}
	return s
}

// Info returns the version with its commit and build time, for example
// "1.2.0 (3f2a9c1-dirty, 2026-10-01T12:00:00Z)".
func Info() string {
	s := current()
	dirty := ""
	if s.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, s.commit, dirty, s.built)
}

// Full returns Info followed by the toolchain and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}
