// Package version provides build identity for suitegen binaries.
package version

import "fmt"

// Build metadata, injected with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the one-line human-readable version.
func String() string {
	return fmt.Sprintf("suitegen %s (commit %s, built %s)", Version, Commit, Date)
}

// IsRelease reports whether the binary was stamped by a release build.
func IsRelease() bool {
	return Version != "dev"
}
