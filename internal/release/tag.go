package release

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// TagInfo is a discovered or synthesized release marker.
type TagInfo struct {
	// Version is the parsed semantic version of the tag.
	Version *semver.Version
	// Prefix is prepended to the version to form the displayable tag.
	Prefix string
	// HeadCommit is the commit the tag points to. Empty when synthesized.
	HeadCommit string
	// IsInitial is true only when no real prior tag exists and this entry is
	// a synthesized seed: the seed already is the next release version.
	IsInitial bool
}

// Tag returns the displayable tag string, prefix included.
func (t TagInfo) Tag() string {
	return t.Prefix + t.Version.String()
}

// SortTagsDescending orders tags by semantic version, highest first.
// Selection walks this order so the newest eligible release wins.
func SortTagsDescending(tags []TagInfo) {
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Version.GreaterThan(tags[j].Version)
	})
}
