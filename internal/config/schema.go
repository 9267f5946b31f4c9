package config

// Configuration is the relkit release configuration, loaded once at startup
// and passed by reference into each component. There is no ambient global.
type Configuration struct {
	// ReleaseMessage is the commit message template for the release commit.
	// A single %s marker is replaced with the release tag.
	ReleaseMessage string `koanf:"release_message"`

	// TagPrefix is prepended to the semantic version to form the release tag
	// (e.g. "v" yields tags like "v1.2.3").
	TagPrefix string `koanf:"tag_prefix"`

	// Types lists the commit-type rules that trigger a release. The reserved
	// feat, fix and revert types always exist with fixed bump levels; user
	// entries may only override their section titles.
	Types []ReleaseTypeRule `koanf:"types"`

	// BumpFiles lists the version-declaration files to rewrite on release.
	// At least one must be defined.
	BumpFiles []BumpFile `koanf:"bump_files"`

	// IncludeAuthors is reserved for changelog author attribution.
	// It is parsed but not consumed by rendering.
	IncludeAuthors bool `koanf:"include_authors"`

	// ChangelogFile, when non-empty, is the per-package file release notes
	// are prepended to. Empty means notes are not persisted.
	ChangelogFile string `koanf:"changelog_file"`
}

// ReleaseTypeRule maps one commit type to its bump level and changelog
// section title.
type ReleaseTypeRule struct {
	// CommitType is the conventional-commit type key, e.g. "feat".
	CommitType string `koanf:"commit_type"`
	// Bump is the semver bump level: "minor" or "patch". Empty is only valid
	// for the reserved types, whose bump levels are fixed.
	Bump string `koanf:"bump"`
	// Section is the changelog section title for this type.
	Section string `koanf:"section"`
}

// BumpFile is one version-declaration file to rewrite on release.
type BumpFile struct {
	// Target names the file's ecosystem: cargo, npm, pub, android or ios.
	Target string `koanf:"target"`
	// Path is the file path relative to the repository root.
	Path string `koanf:"path"`
	// BuildMetadata appends/increments a numeric "+n" build suffix when the
	// file is rewritten. It never affects the computed release version.
	BuildMetadata bool `koanf:"build_metadata"`
	// Package marks the file's parent directory as an independently released
	// package (monorepo mode).
	Package bool `koanf:"package"`
}

// Bump levels understood by the resolver.
const (
	BumpMinor = "minor"
	BumpPatch = "patch"
)

// Supported bump file targets.
var SupportedTargets = []string{"cargo", "npm", "pub", "android", "ios"}
