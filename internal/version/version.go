// Package version exposes build information stamped in via ldflags,
// e.g.:
//
//	go build -ldflags "-X github.com/tickerdesk/marketview/internal/version.Version=$(git describe --tags) \
//	                   -X github.com/tickerdesk/marketview/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version with commit and build time attached, for
// startup logs.
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime
}
