// Package app orchestrates the release pipeline: partition packages, then
// per package classify commits, resolve the next version, render notes and
// publish. Packages are processed one at a time, in partition order; a fatal
// error aborts the remaining packages.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/ariel-frischer/relkit/internal/bump"
	"github.com/ariel-frischer/relkit/internal/changelog"
	"github.com/ariel-frischer/relkit/internal/commit"
	"github.com/ariel-frischer/relkit/internal/config"
	"github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/output"
	"github.com/ariel-frischer/relkit/internal/pkgset"
	"github.com/ariel-frischer/relkit/internal/release"
)

// GitClient is the version-control collaborator contract the pipeline
// consumes. *git.Client satisfies it.
type GitClient interface {
	Sync(ctx context.Context) error
	OriginURL() string
	ListTags(prefix string) ([]release.TagInfo, error)
	TagHead(tag string) (string, error)
	Commits(sinceCommit, pathScope string) ([]commit.Record, error)
	CommitRelease(message string) error
	Push(ctx context.Context) error
	CreateTag(tag string) error
	PushTag(ctx context.Context, tag string) error
	DeleteLocalTag(tag string) error
	DeleteRemoteTag(ctx context.Context, tag string) error
}

// Publisher is the remote publish sink contract. *github.Client satisfies it.
type Publisher interface {
	PublishRelease(ctx context.Context, tag, tagPrefix, notes string) error
	CleanPreReleases(ctx context.Context, tagPrefix string) ([]string, error)
}

// Runner holds everything one release run needs. Build it once at startup;
// no ambient global configuration exists.
type Runner struct {
	Config    *config.Configuration
	Git       GitClient
	Publisher Publisher
	Out       io.Writer

	// PreID selects the prerelease track (e.g. "beta"); empty means stable.
	PreID string
	// Preview computes and prints notes without bumping or publishing.
	Preview bool
	// CleanPre deletes prereleases and their tags after a stable release.
	CleanPre bool
	// Packages optionally restricts the run to the named packages.
	Packages []string

	// applyBump is swapped in tests to avoid touching real version files.
	applyBump func(config.BumpFile, string) error
}

// Run executes the release pipeline for every configured package.
func (r *Runner) Run(ctx context.Context) error {
	if r.applyBump == nil {
		r.applyBump = bump.Apply
	}

	packages, err := pkgset.Partition(r.Config.BumpFiles, r.Config.TagPrefix, r.Packages)
	if err != nil {
		return err
	}

	classifier := commit.NewClassifier(config.TypeKeys(r.Config.Types))

	for i, pkg := range packages {
		output.PrintPackageHeader(r.Out, i+1, len(packages), pkg.Name)
		if err := r.runPackage(ctx, classifier, pkg); err != nil {
			if cliErr := errors.AsCLIError(err); cliErr != nil {
				return cliErr.ForPackage(displayName(pkg))
			}
			return errors.Wrap(err, errors.Runtime).ForPackage(displayName(pkg))
		}
	}

	return nil
}

// runPackage runs the classify -> resolve -> render -> publish sequence for
// one package.
func (r *Runner) runPackage(ctx context.Context, classifier *commit.Classifier, pkg *pkgset.Package) error {
	last, err := r.lastRelease(pkg)
	if err != nil {
		return err
	}

	records, err := r.Git.Commits(last.HeadCommit, pkg.Path)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Collaborator, "getting commits")
	}
	output.PrintInfo(r.Out, "analyzing %d commits", len(records))

	var classified []commit.Classified
	for _, rec := range records {
		if c, ok := classifier.Classify(rec); ok {
			classified = append(classified, c)
		}
	}
	if len(classified) == 0 {
		output.PrintSkip(r.Out, "no relevant commits found, skipping release")
		return nil
	}
	output.PrintInfo(r.Out, "found %d relevant commits", len(classified))

	next, err := release.NextVersion(last, classified, r.Config.Types, r.PreID)
	if err != nil {
		return err
	}
	nextTag := pkg.TagPrefix + next.String()
	output.PrintInfo(r.Out, "next release version: %s", nextTag)

	lastTag := ""
	if !last.IsInitial {
		lastTag = last.Tag()
	}
	doc := changelog.Document{
		Commits:     classified,
		NextVersion: nextTag,
		Notes:       changelog.Render(classified, nextTag, lastTag, r.Config.Types, r.Git.OriginURL()),
	}

	if r.Preview {
		output.PrintNotesSeparator(r.Out)
		fmt.Fprint(r.Out, strings.ReplaceAll(doc.Notes, "\r\n", "\n"))
		output.PrintNotesSeparator(r.Out)
		return nil
	}

	if r.Config.ChangelogFile != "" {
		file := r.Config.ChangelogFile
		if pkg.Path != "" {
			file = path.Join(pkg.Path, file)
		}
		if err := changelog.WriteFile(file, doc.Notes); err != nil {
			return errors.Wrap(err, errors.Collaborator)
		}
		output.PrintInfo(r.Out, "wrote release notes to %s", file)
	}

	for _, target := range pkg.BumpTargets {
		if err := r.applyBump(target, next.String()); err != nil {
			if cliErr := errors.AsCLIError(err); cliErr != nil {
				return cliErr
			}
			return errors.WrapWithMessage(err, errors.Collaborator, "bumping version files")
		}
	}

	if err := r.publish(ctx, pkg, doc); err != nil {
		return err
	}

	if r.CleanPre && next.Prerelease() == "" {
		if err := r.cleanPreReleases(ctx, pkg); err != nil {
			return err
		}
	}

	output.PrintSuccess(r.Out, fmt.Sprintf("released %s", nextTag))
	return nil
}

// lastRelease selects the prior release for a package and resolves the
// commit its tag points to.
func (r *Runner) lastRelease(pkg *pkgset.Package) (release.TagInfo, error) {
	tags, err := r.Git.ListTags(pkg.TagPrefix)
	if err != nil {
		return release.TagInfo{}, errors.WrapWithMessage(err, errors.Collaborator, "getting tags")
	}

	last, err := release.SelectLastRelease(tags, pkg.TagPrefix, r.PreID)
	if err != nil {
		return release.TagInfo{}, err
	}

	if last.IsInitial {
		output.PrintInfo(r.Out, "no previous release found, assuming first release")
		return last, nil
	}

	output.PrintInfo(r.Out, "last release: %s", last.Tag())
	head, err := r.Git.TagHead(last.Tag())
	if err != nil {
		return release.TagInfo{}, errors.WrapWithMessage(err, errors.Collaborator, "getting tag head")
	}
	last.HeadCommit = head
	return last, nil
}

// publish creates the release commit and tag, pushes both, then publishes
// the hosted release. Push failures roll back their own artifacts in the git
// layer; a publish failure is fatal for the package and not retried.
func (r *Runner) publish(ctx context.Context, pkg *pkgset.Package, doc changelog.Document) error {
	message := strings.ReplaceAll(r.Config.ReleaseMessage, "%s", doc.NextVersion)
	if err := r.Git.CommitRelease(message); err != nil {
		return errors.Wrap(err, errors.Collaborator)
	}
	if err := r.Git.Push(ctx); err != nil {
		return errors.Wrap(err, errors.Collaborator)
	}
	if err := r.Git.CreateTag(doc.NextVersion); err != nil {
		return errors.Wrap(err, errors.Collaborator)
	}
	if err := r.Git.PushTag(ctx, doc.NextVersion); err != nil {
		return errors.Wrap(err, errors.Collaborator)
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = fmt.Sprintf(" publishing release %s", doc.NextVersion)
	spin.Start()
	err := r.Publisher.PublishRelease(ctx, doc.NextVersion, pkg.TagPrefix, doc.Notes)
	spin.Stop()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Collaborator, "publishing release")
	}
	return nil
}

// cleanPreReleases deletes hosted prereleases under the package prefix and
// the prerelease tags both locally and on origin.
func (r *Runner) cleanPreReleases(ctx context.Context, pkg *pkgset.Package) error {
	output.PrintInfo(r.Out, "cleaning pre-releases for prefix %s", pkg.TagPrefix)

	if _, err := r.Publisher.CleanPreReleases(ctx, pkg.TagPrefix); err != nil {
		return errors.WrapWithMessage(err, errors.Collaborator, "cleaning pre-releases")
	}

	tags, err := r.Git.ListTags(pkg.TagPrefix)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Collaborator, "getting tags")
	}
	for _, tag := range tags {
		if tag.Version.Prerelease() == "" {
			continue
		}
		if err := r.Git.DeleteLocalTag(tag.Tag()); err != nil {
			return errors.Wrap(err, errors.Collaborator)
		}
		if err := r.Git.DeleteRemoteTag(ctx, tag.Tag()); err != nil {
			return errors.Wrap(err, errors.Collaborator)
		}
	}
	return nil
}

// displayName names a package in error messages; the root package has no name.
func displayName(pkg *pkgset.Package) string {
	if pkg.Name == "" {
		return "(root)"
	}
	return pkg.Name
}
