// Package release resolves the last release for a package and computes the
// next version from its classified commits. It is a two-phase state machine:
// select last release, then compute next version.
package release

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ariel-frischer/relkit/internal/commit"
	"github.com/ariel-frischer/relkit/internal/config"
	"github.com/ariel-frischer/relkit/internal/errors"
)

const bumpMajor = "major"

// SelectLastRelease walks the package's tags, highest version first, and
// picks the relevant prior release. A tag is selected when either preID is
// non-empty and the tag's prerelease identifier contains preID, or the tag
// has no prerelease component at all. Tags matching neither are skipped.
//
// When nothing is selected a seed TagInfo is synthesized: 1.0.0 for stable,
// 1.0.0-<preID>.0 for a prerelease track, marked IsInitial.
func SelectLastRelease(tags []TagInfo, tagPrefix, preID string) (TagInfo, error) {
	SortTagsDescending(tags)

	for _, tag := range tags {
		if preID != "" && strings.Contains(tag.Version.Prerelease(), preID) {
			return tag, nil
		}
		if tag.Version.Prerelease() == "" {
			return tag, nil
		}
	}

	seed := "1.0.0"
	if preID != "" {
		seed = fmt.Sprintf("1.0.0-%s.0", preID)
	}
	v, err := semver.NewVersion(seed)
	if err != nil {
		return TagInfo{}, errors.WrapWithMessage(err, errors.Resolution, "synthesizing seed version")
	}
	return TagInfo{Version: v, Prefix: tagPrefix, IsInitial: true}, nil
}

// NextVersion computes the version that follows last, given the package's
// classified commits, the merged type rules and an optional prerelease id.
//
// When last is a synthesized seed the seed already is the next version and
// computation is skipped. Otherwise the bump level is derived from the
// commits (breaking > minor > patch), applied to the numeric triple only
// when last is not on a prerelease track, and the prerelease suffix is
// advanced or reset per preID. Build metadata is never carried over.
func NextVersion(last TagInfo, commits []commit.Classified, rules []config.ReleaseTypeRule, preID string) (*semver.Version, error) {
	if last.IsInitial {
		return last.Version, nil
	}

	bump, err := bumpLevel(commits, rules)
	if err != nil {
		return nil, err
	}

	next := *last.Version
	if next.Prerelease() == "" {
		switch bump {
		case bumpMajor:
			next = next.IncMajor()
		case config.BumpMinor:
			next = next.IncMinor()
		case config.BumpPatch:
			next = next.IncPatch()
		default:
			return nil, errors.NewResolutionError(fmt.Sprintf("unrecognized bump level %q", bump))
		}
	}
	// While a release is in flight on a prerelease track, the numeric triple
	// stays frozen and only the suffix advances below.

	if preID != "" {
		pre := nextPrerelease(next.Prerelease(), preID)
		next, err = next.SetPrerelease(pre)
		if err != nil {
			return nil, errors.WrapWithMessage(err, errors.Resolution, fmt.Sprintf("setting prerelease %q", pre))
		}
	}

	next, err = next.SetMetadata("")
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Resolution, "stripping build metadata")
	}

	return &next, nil
}

// bumpLevel scans the classified commits for the strongest bump. Any
// breaking note forces a major bump and overrides everything else; otherwise
// a commit whose type rule maps to minor yields minor; otherwise patch.
func bumpLevel(commits []commit.Classified, rules []config.ReleaseTypeRule) (string, error) {
	level := config.BumpPatch

	for _, c := range commits {
		if c.BreakingNote != "" {
			return bumpMajor, nil
		}
		for _, rule := range rules {
			if c.SectionType != rule.CommitType {
				continue
			}
			switch rule.Bump {
			case config.BumpMinor:
				level = config.BumpMinor
			case config.BumpPatch:
			default:
				return "", errors.NewResolutionError(
					fmt.Sprintf("type %q has unrecognized bump level %q", rule.CommitType, rule.Bump),
				)
			}
		}
	}

	return level, nil
}

// nextPrerelease advances an existing "<id>.<n>" suffix on the same track,
// or resets to "<preID>.0" when the track changes or no suffix exists.
// The component directly after the id is the counter; any further components
// are dropped on increment. A suffix without a numeric counter also resets
// to "<preID>.0".
func nextPrerelease(existing, preID string) string {
	if existing == "" {
		return preID + ".0"
	}

	parts := strings.Split(existing, ".")
	if parts[0] != preID || len(parts) < 2 {
		return preID + ".0"
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return preID + ".0"
	}
	return fmt.Sprintf("%s.%d", preID, n+1)
}
