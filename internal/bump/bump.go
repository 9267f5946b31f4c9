// Package bump rewrites version declarations in ecosystem files (Cargo.toml,
// package.json, pubspec.yaml, Xcode projects). It only writes the version
// string the resolver computed; it never decides what that version is.
// The android target is declared unsupported and always fails by design.
package bump

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ariel-frischer/relkit/internal/config"
	"github.com/ariel-frischer/relkit/internal/errors"
)

// versionPattern captures a semantic version inside arbitrary file text:
// group 1 is the numeric triple, group 2 the prerelease suffix, group 3 the
// build metadata.
var versionPattern = regexp.MustCompile(
	`(\d+\.\d+\.\d+)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?`,
)

// Apply rewrites the version declared in the given bump target to version
// (a bare semantic version, no tag prefix). When the target carries the
// build_metadata flag, a numeric "+n" suffix is appended and incremented
// separately from the computed version.
func Apply(target config.BumpFile, version string) error {
	switch target.Target {
	case "cargo", "pub":
		return bumpInPlace(version, target.Path, target.BuildMetadata)
	case "npm":
		return bumpNPM(version, target.Path, target.BuildMetadata)
	case "ios":
		return bumpIOS(version, target.Path)
	case "android":
		return errors.NewCollaboratorError("android bumping is not supported")
	default:
		return errors.NewConfigError(fmt.Sprintf("invalid bump file target %q", target.Target))
	}
}

// withBuildMetadata appends the incremented "+n" suffix to version, based on
// the build metadata currently present in the file. A missing or non-numeric
// suffix restarts at 1.
func withBuildMetadata(version, currentBuild string) string {
	n, err := strconv.Atoi(currentBuild)
	if err != nil {
		return version + "+1"
	}
	return fmt.Sprintf("%s+%d", version, n+1)
}
