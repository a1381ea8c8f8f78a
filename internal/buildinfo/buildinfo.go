// Package buildinfo holds version information injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/watchfire-io/progresswatch/internal/buildinfo.Version=v0.2.0"
package buildinfo

var (
	Version    = "dev"
	Codename   = "unknown"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
