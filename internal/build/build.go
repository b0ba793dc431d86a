// Package build carries build-time version information.
package build

// Info holds version metadata injected at build time via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}
