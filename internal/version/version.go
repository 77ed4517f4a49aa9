// Package version reports build information.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/pablasso/gantitt/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// String is the one-line form printed by `gantitt version`.
func String() string {
	return fmt.Sprintf("gantitt %s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}
