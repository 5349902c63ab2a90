// Package version holds build metadata, set with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-03-14T20:00:00Z
	GoVersion = runtime.Version()               // go version
)

// String is the one-line form used by --version and the startup banner.
func String() string {
	return fmt.Sprintf("%s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
