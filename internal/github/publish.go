// Package github is the publish sink for relkit releases. It talks to the
// GitHub REST API via go-github; publish failures are surfaced as fatal for
// the affected package and never retried.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// Client publishes releases for one repository.
type Client struct {
	releases releaseService
	owner    string
	repo     string
}

// releaseService is the slice of the GitHub API the client uses.
// It exists so tests can substitute a fake.
type releaseService interface {
	CreateRelease(ctx context.Context, owner, repo string, release *gh.RepositoryRelease) (*gh.RepositoryRelease, *gh.Response, error)
	ListReleases(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.RepositoryRelease, *gh.Response, error)
	DeleteRelease(ctx context.Context, owner, repo string, id int64) (*gh.Response, error)
}

// New builds a client authenticated with the given token.
func New(ctx context.Context, token, owner, repo string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		releases: gh.NewClient(oauth2.NewClient(ctx, ts)).Repositories,
		owner:    owner,
		repo:     repo,
	}
}

// PublishRelease creates a release for the given tag. The release is flagged
// as a prerelease when the version (tag minus prefix) carries a prerelease
// component.
func (c *Client) PublishRelease(ctx context.Context, tag, tagPrefix, notes string) error {
	version, err := semver.StrictNewVersion(strings.TrimPrefix(tag, tagPrefix))
	if err != nil {
		return fmt.Errorf("parsing release tag %s: %w", tag, err)
	}

	release := &gh.RepositoryRelease{
		TagName:    gh.String(tag),
		Name:       gh.String(tag),
		Body:       gh.String(notes),
		Prerelease: gh.Bool(version.Prerelease() != ""),
	}

	if _, _, err := c.releases.CreateRelease(ctx, c.owner, c.repo, release); err != nil {
		return fmt.Errorf("creating release %s: %w", tag, err)
	}
	return nil
}

// CleanPreReleases deletes every published prerelease whose tag starts with
// tagPrefix and parses as a prerelease version. It returns the tags of the
// deleted releases; removing the corresponding git tags is the caller's job.
func (c *Client) CleanPreReleases(ctx context.Context, tagPrefix string) ([]string, error) {
	var deleted []string
	opts := &gh.ListOptions{PerPage: 100}

	for {
		releases, resp, err := c.releases.ListReleases(ctx, c.owner, c.repo, opts)
		if err != nil {
			return deleted, fmt.Errorf("listing releases: %w", err)
		}

		for _, rel := range releases {
			tag := rel.GetTagName()
			if !strings.HasPrefix(tag, tagPrefix) {
				continue
			}
			version, err := semver.StrictNewVersion(strings.TrimPrefix(tag, tagPrefix))
			if err != nil || version.Prerelease() == "" {
				continue
			}
			if _, err := c.releases.DeleteRelease(ctx, c.owner, c.repo, rel.GetID()); err != nil {
				return deleted, fmt.Errorf("deleting release %s: %w", tag, err)
			}
			deleted = append(deleted, tag)
		}

		if resp.NextPage == 0 {
			return deleted, nil
		}
		opts.Page = resp.NextPage
	}
}
