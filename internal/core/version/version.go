// Package version provides information about the build version of the bot.
package version

// BuildInfo holds version information about the running build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'rinkbot/internal/core/version.version=v0.0.1'
	// -X 'rinkbot/internal/core/version.commit=abcd' -X 'rinkbot/internal/core/version.date=2026-08-30'"
	return BuildInfo{
		Service: "rinkbot",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// UserAgent renders the conventional client identification string
func UserAgent() string {
	return "rinkbot/" + version
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
