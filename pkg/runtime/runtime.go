package runtime

var (
	// Version is the build version, set via ldflags
	Version = "dev"
	// GitCommit is the git commit hash, set via ldflags
	GitCommit = "unknown"
	// Timestamp is the build timestamp, set via ldflags
	Timestamp = "unknown"
)
