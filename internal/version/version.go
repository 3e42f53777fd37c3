// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/ghostsync/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/ghostsync/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	         ./cmd/ghostsync
package version

import "runtime/debug"

// Build-time variables (set via ldflags)
var (
	Version = "dev"
	Commit  = "unknown"
)

// String returns a formatted version string. Without ldflags the module
// version and VCS revision recorded by the Go toolchain are used.
func String() string {
	version, commit := Version, Commit
	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "unknown" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			}
		}
	}
	return "ghostsync " + version + " (" + commit + ")"
}
