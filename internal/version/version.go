package version

import "fmt"

// Build metadata shared by every docsflow binary. The release pipeline
// overrides these via ldflags; the defaults mark a local build.
var (
	// Version is the semantic version of the docsflow toolchain.
	Version = "1.0.0"
	// Commit is the short git SHA the binaries were built from (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full renders the toolchain version with commit and build time, as shown
// by the `version` subcommand of each binary.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
