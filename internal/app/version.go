package app

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags:
//
//	go build -ldflags "-X github.com/quietpage/quietpage/internal/app.Version=1.0.0" ./cmd/quietpage
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Build returns the ldflags metadata. Commit and build time fall back to the
// VCS stamp the Go toolchain embeds when ldflags did not set them.
func Build() BuildInfo {
	b := BuildInfo{Version: Version, Commit: Commit, BuildTime: BuildTime}
	if b.Commit != "" && b.BuildTime != "" {
		return b
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && b.Commit == "":
				b.Commit = shortRevision(s.Value)
			case s.Key == "vcs.time" && b.BuildTime == "":
				b.BuildTime = s.Value
			}
		}
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.BuildTime == "" {
		b.BuildTime = "unknown"
	}
	return b
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("quietpage %s (commit: %s, built: %s)", b.Version, b.Commit, b.BuildTime)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
