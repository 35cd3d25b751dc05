// Package buildinfo reports the version of the running tiler binary.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/tiler/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/tiler/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/tiler/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/tiler
//
// Without ldflags, module and VCS metadata embedded by the go tool fill in
// whatever is known.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

const (
	unsetVersion = "dev"
	unsetCommit  = "none"
	unsetDate    = "unknown"
)

var (
	Version = unsetVersion
	Commit  = unsetCommit
	Date    = unsetDate
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fillFrom(info)
	}
}

func fillFrom(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == unsetVersion && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && Commit == unsetCommit {
			Commit = s.Value
		}
		if s.Key == "vcs.time" && Date == unsetDate {
			Date = s.Value
		}
	}
}

// String is the multi-line summary served on /version.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return "{{.Name}} version " + Version + "\ncommit: " + Commit + "\nbuilt: " + Date + "\n"
}
