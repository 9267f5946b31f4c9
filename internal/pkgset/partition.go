// Package pkgset partitions the configured version-file declarations into
// independently released packages. Partitioning runs once at startup;
// packages are never mutated afterward.
package pkgset

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/relkit/internal/config"
	"github.com/ariel-frischer/relkit/internal/errors"
)

// Package is one unit of independent release.
type Package struct {
	// Name is empty for the repository root package.
	Name string
	// Path is the package's directory relative to the repository root,
	// empty for the root package. It scopes the commit log.
	Path string
	// TagPrefix is the global prefix for the root package and
	// "<name>@<prefix>" for named packages.
	TagPrefix string
	// BumpTargets are the version-file declarations belonging to this package.
	BumpTargets []config.BumpFile
}

// Partition groups bump-file declarations into packages. Declarations with
// package=false join a single root package. Declarations with package=true
// are grouped by their immediate parent directory name into a named package
// whose path is the declaration path minus its last segment.
//
// The root package is discarded when it ends up with zero targets. When
// selected is non-empty, packages whose names are not listed are removed
// after grouping; an empty result is a configuration error.
//
// Order is deterministic: root first if present, then named packages in
// declaration order.
func Partition(files []config.BumpFile, tagPrefix string, selected []string) ([]*Package, error) {
	root := &Package{TagPrefix: tagPrefix}
	var names []string
	named := make(map[string]*Package)

	for _, f := range files {
		if !f.Package {
			root.BumpTargets = append(root.BumpTargets, f)
			continue
		}

		segments := strings.Split(f.Path, "/")
		if len(segments) < 2 {
			return nil, errors.NewConfigError(
				fmt.Sprintf("invalid bump file path %q for a package (need at least a parent directory)", f.Path),
			)
		}

		name := segments[len(segments)-2]
		pkg, ok := named[name]
		if !ok {
			pkg = &Package{
				Name:      name,
				Path:      strings.Join(segments[:len(segments)-1], "/"),
				TagPrefix: fmt.Sprintf("%s@%s", name, tagPrefix),
			}
			named[name] = pkg
			names = append(names, name)
		}
		pkg.BumpTargets = append(pkg.BumpTargets, f)
	}

	var packages []*Package
	if len(root.BumpTargets) > 0 {
		packages = append(packages, root)
	}
	for _, name := range names {
		packages = append(packages, named[name])
	}

	if len(selected) > 0 {
		packages = filterSelected(packages, selected)
	}

	if len(packages) == 0 {
		return nil, errors.NewConfigError(
			"no packages to release",
			"Check that the selected package names match package bump_files entries in your config",
		)
	}

	return packages, nil
}

// filterSelected keeps only packages whose names are in the selection.
func filterSelected(packages []*Package, selected []string) []*Package {
	keep := make(map[string]bool, len(selected))
	for _, name := range selected {
		keep[name] = true
	}

	var out []*Package
	for _, pkg := range packages {
		if keep[pkg.Name] {
			out = append(out, pkg)
		}
	}
	return out
}
