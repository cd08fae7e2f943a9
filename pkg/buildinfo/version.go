// Package buildinfo exposes the version stamped into the binary.
//
// Release builds inject the values at link time:
//
//	go build -ldflags "-X github.com/anchorplan/anchorplan/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/anchorplan/anchorplan/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/anchorplan/anchorplan/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds without ldflags fall back to the VCS stamps the Go toolchain
// embeds on its own, so "go install" binaries still report a commit.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Injected with -X at link time. Fields left at their defaults are
// filled from the toolchain's VCS stamps where available.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// String returns the full build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
