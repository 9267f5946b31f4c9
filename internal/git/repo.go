// Package git provides the version-control collaborators for relkit: tag
// listing, commit log retrieval, and the release commit/tag/push sequence.
// It uses the go-git library throughout; no git CLI is required.
package git

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// remotePattern extracts host, owner and repository name from an origin URL,
// both SCP-style (git@host:owner/repo.git) and HTTPS forms.
var remotePattern = regexp.MustCompile(`(git@|https://)([\w.@]+)(/|:)([\w\-_]+)/([\w\-_]+?)(\.git)?/?$`)

// Client wraps a local repository plus the credentials used for pushes.
type Client struct {
	repo        *git.Repository
	token       string
	authorName  string
	authorEmail string

	// Owner and Repo identify the hosting project, parsed from origin.
	Owner string
	Repo  string

	originURL string
}

// Open opens the repository containing path (or the working directory when
// path is empty) and parses the origin remote.
func Open(path, token, authorName, authorEmail string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return nil, fmt.Errorf("resolving origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, fmt.Errorf("origin remote has no URL")
	}

	caps := remotePattern.FindStringSubmatch(urls[0])
	if caps == nil {
		return nil, fmt.Errorf("cannot parse origin URL %q", urls[0])
	}

	return &Client{
		repo:        repo,
		token:       token,
		authorName:  authorName,
		authorEmail: authorEmail,
		Owner:       caps[4],
		Repo:        caps[5],
		originURL:   fmt.Sprintf("https://%s/%s/%s", caps[2], caps[4], caps[5]),
	}, nil
}

// OriginURL returns the browsable https URL of the origin remote, without
// credentials or the .git suffix. Changelog links are built from it.
func (c *Client) OriginURL() string {
	return c.originURL
}

// Sync refuses to run against a dirty working tree and fetches tags from
// origin so tag selection sees the remote state.
func (c *Client) Sync(ctx context.Context) error {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("getting worktree status: %w", err)
	}
	if !status.IsClean() {
		return fmt.Errorf("there are uncommitted changes; commit or stash them before releasing")
	}

	err = c.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		Tags:       git.AllTags,
		Prune:      true,
		Auth:       c.auth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("fetching from origin: %w", err)
	}
	return nil
}

// auth returns push/fetch credentials. The hosting token doubles as the
// basic-auth username, the same convention GitHub accepts for token access.
func (c *Client) auth() transport.AuthMethod {
	if c.token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: c.token}
}

// signature builds the commit/tag author identity.
func (c *Client) signature() object.Signature {
	return object.Signature{
		Name:  c.authorName,
		Email: c.authorEmail,
		When:  time.Now(),
	}
}

// pushRefSpec pushes a single refspec to origin.
func (c *Client) pushRefSpec(ctx context.Context, spec gitconfig.RefSpec) error {
	err := c.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{spec},
		Auth:       c.auth(),
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	return err
}
