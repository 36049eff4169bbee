// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/chromash/chromash/pkg/buildinfo.Version=v0.1.0 \
//	    -X github.com/chromash/chromash/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/chromash/chromash/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Name is the binary and package name.
const Name = "chromash"

// License is the SPDX identifier the package is distributed under.
const License = "MIT"

var (
	// Version is the semantic version (e.g., "0.1.0").
	// Set via ldflags: -X github.com/chromash/chromash/pkg/buildinfo.Version=...
	Version = "0.1.0"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/chromash/chromash/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/chromash/chromash/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\nlicense: %s", Version, Commit, Date, License)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
