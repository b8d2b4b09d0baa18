// Package version carries the build metadata stamped in at release time.
package version

import (
	"fmt"
	"runtime"
)

// Stamped by the release pipeline via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns the one-line banner printed by the version command.
func Info() string {
	return fmt.Sprintf("asolint %s (%s) built on %s with %s",
		Version, Commit, Date, runtime.Version())
}

// UserAgent identifies this build in outbound HTTP requests.
func UserAgent() string {
	return "asolint/" + Version
}
