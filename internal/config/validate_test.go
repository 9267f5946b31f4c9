package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTypeRulesDefaults(t *testing.T) {
	rules, err := MergeTypeRules(nil)
	require.NoError(t, err)

	require.Len(t, rules, 3)
	assert.Equal(t, ReleaseTypeRule{CommitType: "feat", Bump: BumpMinor, Section: "Features"}, rules[0])
	assert.Equal(t, ReleaseTypeRule{CommitType: "fix", Bump: BumpPatch, Section: "Bug Fixes"}, rules[1])
	assert.Equal(t, ReleaseTypeRule{CommitType: "revert", Bump: BumpPatch, Section: "Reverts"}, rules[2])
}

func TestMergeTypeRulesAppendsUserTypes(t *testing.T) {
	rules, err := MergeTypeRules([]ReleaseTypeRule{
		{CommitType: "perf", Bump: BumpPatch, Section: "Performance Improvements"},
		{CommitType: "docs", Bump: BumpMinor, Section: "Documentation"},
	})
	require.NoError(t, err)

	require.Len(t, rules, 5)
	assert.Equal(t, "feat", rules[0].CommitType)
	assert.Equal(t, "perf", rules[3].CommitType)
	assert.Equal(t, "docs", rules[4].CommitType)
}

func TestMergeTypeRulesReservedSectionOverride(t *testing.T) {
	rules, err := MergeTypeRules([]ReleaseTypeRule{
		{CommitType: "feat", Section: "New Stuff"},
	})
	require.NoError(t, err)

	require.Len(t, rules, 3)
	assert.Equal(t, "New Stuff", rules[0].Section)
	assert.Equal(t, BumpMinor, rules[0].Bump, "reserved bump level must survive a section override")
}

func TestMergeTypeRulesRejectsReservedBumpOverride(t *testing.T) {
	for _, reserved := range []string{"feat", "fix", "revert"} {
		_, err := MergeTypeRules([]ReleaseTypeRule{
			{CommitType: reserved, Bump: BumpPatch, Section: "Anything"},
		})
		require.Error(t, err, "reserved type %s", reserved)
		assert.Contains(t, err.Error(), "reserved")
	}
}

func TestMergeTypeRulesRejectsBadBump(t *testing.T) {
	_, err := MergeTypeRules([]ReleaseTypeRule{
		{CommitType: "chore", Bump: "major", Section: "Chores"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only minor and patch")
}

func TestMergeTypeRulesRejectsEmptySection(t *testing.T) {
	_, err := MergeTypeRules([]ReleaseTypeRule{
		{CommitType: "chore", Bump: BumpPatch},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section title cannot be empty")
}

func TestValidateBumpFiles(t *testing.T) {
	tests := map[string]struct {
		files   []BumpFile
		wantErr string
	}{
		"valid": {
			files: []BumpFile{{Target: "npm", Path: "package.json"}},
		},
		"empty list": {
			wantErr: "at least one bump file",
		},
		"unknown target": {
			files:   []BumpFile{{Target: "gem", Path: "x.gemspec"}},
			wantErr: "unsupported bump file target",
		},
		"empty path": {
			files:   []BumpFile{{Target: "npm"}},
			wantErr: "empty path",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateBumpFiles(tt.files)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTypeKeys(t *testing.T) {
	rules, err := MergeTypeRules([]ReleaseTypeRule{
		{CommitType: "perf", Bump: BumpPatch, Section: "Performance Improvements"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"feat", "fix", "revert", "perf"}, TypeKeys(rules))
}
