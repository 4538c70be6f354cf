// Package buildinfo identifies the chatpulse build that produced a report.
package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// Set at build time via ldflags:
// -X github.com/otherjamesbrown/chatpulse/pkg/buildinfo.Version=v0.3.0
// -X github.com/otherjamesbrown/chatpulse/pkg/buildinfo.Commit=4f1c2ab
// -X github.com/otherjamesbrown/chatpulse/pkg/buildinfo.BuildTime=2026-09-30T08:00:00Z
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Generator is the name stamped into report metadata.
const Generator = "chatpulse"

// Info describes the generator of a report.
type Info struct {
	Generator string `json:"generator"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the build info. A commit left unset by ldflags falls back to
// the VCS revision recorded by the Go toolchain, when present.
func Get() Info {
	info := Info{
		Generator: Generator,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
	if info.Commit == "unknown" {
		if rev, ok := vcsRevision(); ok {
			info.Commit = rev
		}
	}
	return info
}

func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 7 {
				return s.Value[:7], true
			}
			return s.Value, true
		}
	}
	return "", false
}

// String returns a one-liner like "v0.3.0 (4f1c2ab, 2026-09-30T08:00:00Z)".
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}
