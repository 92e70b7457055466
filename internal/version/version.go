package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by `siteindex --version`.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
