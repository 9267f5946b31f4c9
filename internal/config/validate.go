package config

import (
	"fmt"

	"github.com/ariel-frischer/relkit/internal/errors"
)

// reservedRules are the three commit types that always exist with fixed bump
// levels. User configuration may only override their section titles.
func reservedRules() []ReleaseTypeRule {
	return []ReleaseTypeRule{
		{CommitType: "feat", Bump: BumpMinor, Section: "Features"},
		{CommitType: "fix", Bump: BumpPatch, Section: "Bug Fixes"},
		{CommitType: "revert", Bump: BumpPatch, Section: "Reverts"},
	}
}

// MergeTypeRules merges user rule entries into the reserved rule set and
// validates them. Reserved types keep their fixed bump levels and may only
// have their section titles replaced; supplying a bump for one is rejected.
// Any other type must declare a minor or patch bump and a non-empty section.
// The result keeps the reserved rules first, then user additions in order.
func MergeTypeRules(userRules []ReleaseTypeRule) ([]ReleaseTypeRule, error) {
	merged := reservedRules()

	for _, rule := range userRules {
		switch rule.CommitType {
		case "feat", "fix", "revert":
			if rule.Bump != "" {
				return nil, errors.NewConfigError(
					fmt.Sprintf("type %q is reserved and cannot override its bump level", rule.CommitType),
					"Remove the 'bump' field; reserved types only accept a 'section' override",
				)
			}
		default:
			if rule.Bump != BumpMinor && rule.Bump != BumpPatch {
				return nil, errors.NewConfigError(
					fmt.Sprintf("type %q: only minor and patch bumps are allowed, got %q", rule.CommitType, rule.Bump),
				)
			}
		}

		if rule.Section == "" {
			return nil, errors.NewConfigError(
				fmt.Sprintf("type %q: section title cannot be empty", rule.CommitType),
			)
		}

		switch rule.CommitType {
		case "feat":
			merged[0].Section = rule.Section
		case "fix":
			merged[1].Section = rule.Section
		case "revert":
			merged[2].Section = rule.Section
		default:
			merged = append(merged, rule)
		}
	}

	return merged, nil
}

// ValidateBumpFiles checks that at least one bump file is configured and
// every declared target is supported.
func ValidateBumpFiles(files []BumpFile) error {
	if len(files) == 0 {
		return errors.NewConfigError(
			"at least one bump file must be defined",
			"Add a bump_files entry to your config, e.g. { target: npm, path: package.json }",
		)
	}

	for _, f := range files {
		if !isSupportedTarget(f.Target) {
			return errors.NewConfigError(
				fmt.Sprintf("unsupported bump file target %q (supported: cargo, npm, pub, android, ios)", f.Target),
			)
		}
		if f.Path == "" {
			return errors.NewConfigError(
				fmt.Sprintf("bump file with target %q has an empty path", f.Target),
			)
		}
	}

	return nil
}

// TypeKeys returns the ordered commit-type keys of the given rules,
// the shape the classifier consumes.
func TypeKeys(rules []ReleaseTypeRule) []string {
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = r.CommitType
	}
	return keys
}

func isSupportedTarget(target string) bool {
	for _, t := range SupportedTargets {
		if t == target {
			return true
		}
	}
	return false
}
