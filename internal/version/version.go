package version

import "fmt"

// Version information for the tagdex CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI
	Version = "0.1.0-dev"

	// Commit is an optional git commit hash
	Commit = "unknown"

	// BuildDate is an optional build date in ISO-8601
	BuildDate = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
