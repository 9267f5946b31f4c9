package bump

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relkit/internal/config"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApplyCargo(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Cargo.toml", `[package]
name = "widgets"
version = "1.2.3"
edition = "2021"
`)

	require.NoError(t, Apply(config.BumpFile{Target: "cargo", Path: path}, "1.3.0"))
	assert.Contains(t, readFile(t, path), `version = "1.3.0"`)
}

func TestApplyPubReplacesFirstVersionOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pubspec.yaml", `name: widgets
version: 1.2.3
environment:
  sdk: ">=3.0.0 <4.0.0"
`)

	require.NoError(t, Apply(config.BumpFile{Target: "pub", Path: path}, "2.0.0-beta.1"))

	got := readFile(t, path)
	assert.Contains(t, got, "version: 2.0.0-beta.1")
	assert.Contains(t, got, `sdk: ">=3.0.0 <4.0.0"`, "later versions in the file stay untouched")
}

func TestApplyInPlaceBuildMetadata(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pubspec.yaml", "name: widgets\nversion: 1.2.3+7\n")
	target := config.BumpFile{Target: "pub", Path: path, BuildMetadata: true}

	require.NoError(t, Apply(target, "1.3.0"))
	assert.Contains(t, readFile(t, path), "version: 1.3.0+8")

	// A file without a numeric build suffix restarts at 1.
	path = writeFile(t, dir, "fresh.yaml", "version: 1.2.3\n")
	target.Path = path
	require.NoError(t, Apply(target, "1.3.0"))
	assert.Contains(t, readFile(t, path), "version: 1.3.0+1")
}

func TestApplyNPM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "package.json", `{
  "name": "widgets",
  "version": "1.2.3",
  "private": true
}
`)

	require.NoError(t, Apply(config.BumpFile{Target: "npm", Path: path}, "1.2.4"))

	var pkg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &pkg))
	assert.Equal(t, "1.2.4", pkg["version"])
	assert.Equal(t, "widgets", pkg["name"])
	assert.Equal(t, true, pkg["private"])
}

func TestApplyNPMBuildMetadata(t *testing.T) {
	path := writeFile(t, t.TempDir(), "package.json", `{"version": "1.2.3+4"}`)

	require.NoError(t, Apply(config.BumpFile{Target: "npm", Path: path, BuildMetadata: true}, "1.3.0"))

	var pkg map[string]string
	require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &pkg))
	assert.Equal(t, "1.3.0+5", pkg["version"])
}

func TestApplyIOS(t *testing.T) {
	pbxproj := `// !$*UTF8*$!
buildSettings = {
	MARKETING_VERSION = 1.2.3;
	CURRENT_PROJECT_VERSION = 5.0;
};
`

	tests := map[string]struct {
		version       string
		wantMarketing string
		wantProject   string
	}{
		"stable":        {version: "1.3.0", wantMarketing: "1.3.0", wantProject: "5.0"},
		"alpha track":   {version: "1.3.0-alpha.2", wantMarketing: "1.3.0", wantProject: "1.2"},
		"beta track":    {version: "1.3.0-beta.4", wantMarketing: "1.3.0", wantProject: "2.4"},
		"rc track":      {version: "1.3.0-rc.1", wantMarketing: "1.3.0", wantProject: "3.1"},
		"unknown track": {version: "1.3.0-nightly.9", wantMarketing: "1.3.0", wantProject: "4.9"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			projectFile := writeFile(t, dir, "App.xcodeproj/project.pbxproj", pbxproj)

			target := config.BumpFile{Target: "ios", Path: filepath.Join(dir, "App")}
			require.NoError(t, Apply(target, tt.version))

			got := readFile(t, projectFile)
			assert.Contains(t, got, "MARKETING_VERSION = "+tt.wantMarketing+";")
			assert.Contains(t, got, "CURRENT_PROJECT_VERSION = "+tt.wantProject+";")
		})
	}
}

func TestApplyAndroidUnsupported(t *testing.T) {
	err := Apply(config.BumpFile{Target: "android", Path: "build.gradle"}, "1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "android bumping is not supported")
}

func TestApplyUnknownTarget(t *testing.T) {
	err := Apply(config.BumpFile{Target: "gem", Path: "x.gemspec"}, "1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bump file target")
}
