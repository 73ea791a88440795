package app

import "fmt"

// Build information populated via -ldflags at build time by CI.
var (
	// BuildVersion is the semantic version of the built binary.
	BuildVersion = "0.0.0-dev"
	// BuildCommit is the VCS commit SHA associated with the build.
	BuildCommit = "unknown"
	// BuildDate is the ISO-8601 timestamp of the build.
	BuildDate = "unknown"
)

// VersionString formats the build information for -version output.
func VersionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", BuildVersion, BuildCommit, BuildDate)
}
