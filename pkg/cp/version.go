package cp

import (
	"fmt"

	"github.com/blang/semver/v4"
)

// Version is this build's semantic version.
const Version = "0.1.0"

var parsedVersion = semver.MustParse(Version)

// VersionInfo reports build version metadata: a parsed semantic
// version plus whatever commit hash the build pipeline stamped in.
type VersionInfo struct {
	Version   semver.Version
	GitCommit string
}

// GetVersionInfo returns the running build's VersionInfo. gitCommit is
// whatever the caller's build pipeline stamped in (empty if unset).
func GetVersionInfo(gitCommit string) VersionInfo {
	return VersionInfo{Version: parsedVersion, GitCommit: gitCommit}
}

func (v VersionInfo) String() string {
	if v.GitCommit == "" {
		return v.Version.String()
	}
	return fmt.Sprintf("%s (%s)", v.Version.String(), v.GitCommit)
}

// CompatibleWith reports whether a SolverParameters file stamped with
// fileVersion can be loaded by this build: only the major versions are
// compared, and any other major version (older or newer) is rejected.
// Minor and patch are not compared (a config written by a newer build
// within the same major line may use fields this build doesn't
// understand, but cpconfig.LoadYAML ignores unknown YAML keys).
func CompatibleWith(fileVersion string) (bool, error) {
	fv, err := semver.Parse(fileVersion)
	if err != nil {
		return false, fmt.Errorf("cp: invalid version %q: %w", fileVersion, err)
	}
	return fv.Major == parsedVersion.Major, nil
}
