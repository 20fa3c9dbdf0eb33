// Package version holds build identification, populated via -ldflags.
package version

var (
	// Version is the release tag of this build.
	Version = "dev"
	// GitSHA is the git commit SHA.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)
