package rutinas

import (
	"fmt"
	"runtime"
)

// Version information
const Version = "1.0.0"

// BuildInfo contains build information
var BuildInfo = struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
}{
	Version:   Version,
	GoVersion: runtime.Version(),
}

// SetBuildInfo is called by the build process
func SetBuildInfo(commit, date string) {
	BuildInfo.GitCommit = commit
	BuildInfo.BuildDate = date
}

// VersionInfo returns formatted version information
func VersionInfo() string {
	info := fmt.Sprintf("rutinas %s (%s)", BuildInfo.Version, BuildInfo.GoVersion)
	if BuildInfo.GitCommit != "" {
		info += fmt.Sprintf(" commit %s", BuildInfo.GitCommit)
	}
	return info
}
