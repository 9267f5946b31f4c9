package config

import (
	"fmt"
	"os"
)

// scaffoldTemplate is the commented starter configuration written by
// 'relkit init'.
const scaffoldTemplate = `# Configuration file for relkit

# Release message of the release commit - %s will be replaced with the release tag
release_message: "chore(release): %s"
# Prefix of the release tag
tag_prefix: v
# If defined release notes will be prepended to this file
# changelog_file: CHANGELOG.md
# Commit types that trigger a release and their corresponding semver bump.
# feat, fix and revert are reserved types and can only have their section name changed.
# types:
#   - { commit_type: feat, section: Features }
#   - { commit_type: fix, section: Bug Fixes }
#   - { commit_type: perf, bump: patch, section: Performance Improvements }
# Version files to rewrite on release. At least one file must be defined for
# a release to be published.
# (supported targets: cargo, npm, pub, android and ios)
# Set package: true and the file's parent folder becomes an independently
# released package scoped to commits under that folder (monorepo mode).
# bump_files:
#   - { target: cargo, path: Cargo.toml }
#   - { target: npm, path: package.json }
#   - { target: pub, path: pubspec.yaml, build_metadata: true }
#   - { target: npm, path: packages/a/package.json, package: true }
#   - { target: npm, path: packages/b/package.json, package: true }
`

// Scaffold writes the starter configuration to path. It refuses to overwrite
// an existing file.
func Scaffold(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := os.WriteFile(path, []byte(scaffoldTemplate), 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
