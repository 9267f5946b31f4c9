package pkgset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relkit/internal/config"
)

func TestPartitionRootOnly(t *testing.T) {
	files := []config.BumpFile{
		{Target: "cargo", Path: "Cargo.toml"},
		{Target: "npm", Path: "package.json"},
	}

	packages, err := Partition(files, "v", nil)
	require.NoError(t, err)
	require.Len(t, packages, 1)

	root := packages[0]
	assert.Empty(t, root.Name)
	assert.Empty(t, root.Path)
	assert.Equal(t, "v", root.TagPrefix)
	assert.Len(t, root.BumpTargets, 2)
}

func TestPartitionNamedPackages(t *testing.T) {
	files := []config.BumpFile{
		{Target: "npm", Path: "packages/a/package.json", Package: true},
		{Target: "npm", Path: "packages/b/package.json", Package: true},
		{Target: "cargo", Path: "packages/a/Cargo.toml", Package: true},
	}

	packages, err := Partition(files, "v", nil)
	require.NoError(t, err)
	require.Len(t, packages, 2)

	a, b := packages[0], packages[1]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "packages/a", a.Path)
	assert.Equal(t, "a@v", a.TagPrefix)
	assert.Len(t, a.BumpTargets, 2)

	assert.Equal(t, "b", b.Name)
	assert.Equal(t, "packages/b", b.Path)
	assert.Equal(t, "b@v", b.TagPrefix)
	assert.Len(t, b.BumpTargets, 1)
}

func TestPartitionRootComesFirst(t *testing.T) {
	files := []config.BumpFile{
		{Target: "npm", Path: "packages/a/package.json", Package: true},
		{Target: "cargo", Path: "Cargo.toml"},
	}

	packages, err := Partition(files, "v", nil)
	require.NoError(t, err)
	require.Len(t, packages, 2)
	assert.Empty(t, packages[0].Name)
	assert.Equal(t, "a", packages[1].Name)
}

func TestPartitionEmptyRootDropped(t *testing.T) {
	files := []config.BumpFile{
		{Target: "npm", Path: "packages/a/package.json", Package: true},
	}

	packages, err := Partition(files, "v", nil)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "a", packages[0].Name)
}

func TestPartitionRejectsBarePackagePath(t *testing.T) {
	files := []config.BumpFile{
		{Target: "npm", Path: "package.json", Package: true},
	}

	_, err := Partition(files, "v", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bump file path")
}

func TestPartitionSelection(t *testing.T) {
	files := []config.BumpFile{
		{Target: "cargo", Path: "Cargo.toml"},
		{Target: "npm", Path: "packages/a/package.json", Package: true},
		{Target: "npm", Path: "packages/b/package.json", Package: true},
	}

	packages, err := Partition(files, "v", []string{"b"})
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "b", packages[0].Name)
}

func TestPartitionSelectionMissFails(t *testing.T) {
	files := []config.BumpFile{
		{Target: "npm", Path: "packages/a/package.json", Package: true},
	}

	_, err := Partition(files, "v", []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no packages to release")
}
