// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/flowdag/flowdag/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/flowdag/flowdag/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/flowdag/flowdag/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/flowdag/flowdag/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/flowdag/flowdag/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/flowdag/flowdag/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted multi-line build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Short returns a single-token version string for API payloads, e.g.
// "dev" or "v1.2.3 (4f9c1aa)" when a commit is known.
func Short() string {
	if Commit == "none" || Commit == "" {
		return Version
	}
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
