package bump

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// bumpInPlace replaces the first semantic version found in the file with the
// new version. This serves targets whose files carry a single version
// declaration near the top (Cargo.toml, pubspec.yaml).
func bumpInPlace(version, path string, buildMetadata bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	contents := string(data)

	caps := versionPattern.FindStringSubmatch(contents)
	if caps == nil {
		return fmt.Errorf("no version found in %s", path)
	}

	final := version
	if buildMetadata {
		final = withBuildMetadata(version, caps[3])
	}

	updated := strings.Replace(contents, caps[0], final, 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// bumpNPM rewrites the "version" field of a package.json file.
func bumpNPM(version, path string, buildMetadata bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	var current string
	if raw, ok := pkg["version"]; ok {
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("parsing version field of %s: %w", path, err)
		}
	}

	final := version
	if buildMetadata {
		caps := versionPattern.FindStringSubmatch(current)
		if caps == nil {
			return fmt.Errorf("no valid version in %s", path)
		}
		final = withBuildMetadata(version, caps[3])
	}

	encoded, err := json.Marshal(final)
	if err != nil {
		return fmt.Errorf("encoding version for %s: %w", path, err)
	}
	pkg["version"] = encoded

	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var (
	marketingVersionPattern = regexp.MustCompile(`MARKETING_VERSION = .*;`)
	projectVersionPattern   = regexp.MustCompile(`CURRENT_PROJECT_VERSION = .*;`)
)

// bumpIOS rewrites MARKETING_VERSION and CURRENT_PROJECT_VERSION in an Xcode
// project. App Store Connect only accepts period-separated numbers, so the
// prerelease id is translated to a numeric track: alpha=1, beta=2, rc=3,
// anything else 4, and a stable version becomes the fixed 5.0.
func bumpIOS(version, path string) error {
	caps := versionPattern.FindStringSubmatch(version)
	if caps == nil {
		return fmt.Errorf("invalid version %q for ios target", version)
	}
	marketing := caps[1]

	projectVersion := "5.0"
	if pre := caps[2]; pre != "" {
		parts := strings.SplitN(pre, ".", 2)
		track := "4"
		switch parts[0] {
		case "alpha":
			track = "1"
		case "beta":
			track = "2"
		case "rc":
			track = "3"
		}
		suffix := "0"
		if len(parts) == 2 {
			suffix = parts[1]
		}
		projectVersion = track + "." + suffix
	}

	projectFile := strings.TrimSuffix(path, "/") + ".xcodeproj/project.pbxproj"
	data, err := os.ReadFile(projectFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", projectFile, err)
	}
	contents := string(data)

	if !marketingVersionPattern.MatchString(contents) {
		return fmt.Errorf("no MARKETING_VERSION in %s", projectFile)
	}
	contents = marketingVersionPattern.ReplaceAllLiteralString(
		contents, fmt.Sprintf("MARKETING_VERSION = %s;", marketing))

	if !projectVersionPattern.MatchString(contents) {
		return fmt.Errorf("no CURRENT_PROJECT_VERSION in %s", projectFile)
	}
	contents = projectVersionPattern.ReplaceAllLiteralString(
		contents, fmt.Sprintf("CURRENT_PROJECT_VERSION = %s;", projectVersion))

	if err := os.WriteFile(projectFile, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", projectFile, err)
	}
	return nil
}
