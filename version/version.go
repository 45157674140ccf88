// Package version exposes build metadata injected at link time:
//
//	go build -ldflags "-X github.com/strive-code/strive/version.Version=v0.3.0 \
//	    -X github.com/strive-code/strive/version.CommitHash=$(git rev-parse HEAD) \
//	    -X github.com/strive-code/strive/version.BuildTime=$(date -u +%FT%TZ)"
//
// Untagged builds report "dev".
package version

import (
	"fmt"
	"runtime"
)

// Set via ldflags at build time
var (
	Version    = "dev"     // Semantic version of the tagged release
	CommitHash = "dev"     // Git commit the binary was built from
	BuildTime  = "unknown" // UTC build timestamp
)

// Info bundles version and build information for display and JSON output
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders a one-line human-readable version
func (i Info) String() string {
	return fmt.Sprintf("strive %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}

// Short returns the abbreviated commit hash
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
