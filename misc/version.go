// Package misc holds small program-wide helpers.
package misc

import "runtime/debug"

const appName = "gardenc"

// GetAppName returns the program name used for logger naming and generated
// file names.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version baked into the binary, or "devel"
// for local builds.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}

// GetGitHash returns the VCS revision recorded in the build info, if any.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}
