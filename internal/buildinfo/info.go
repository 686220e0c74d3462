// Package buildinfo carries version details stamped in at build time.
package buildinfo

// Set via -ldflags at release build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
