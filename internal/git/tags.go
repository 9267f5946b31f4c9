package git

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/ariel-frischer/relkit/internal/release"
)

// ListTags returns all tags whose names start with prefix and whose
// remainder parses as a valid semantic version, sorted by version
// descending. Other tags never reach the resolver.
func (c *Client) ListTags(prefix string) ([]release.TagInfo, error) {
	iter, err := c.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []release.TagInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		version, parseErr := semver.StrictNewVersion(strings.TrimPrefix(name, prefix))
		if parseErr != nil {
			return nil
		}
		tags = append(tags, release.TagInfo{Version: version, Prefix: prefix})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	release.SortTagsDescending(tags)
	return tags, nil
}

// TagHead resolves the commit a tag points to, following annotated tag
// objects to their target commit.
func (c *Client) TagHead(tag string) (string, error) {
	ref, err := c.repo.Reference(plumbing.NewTagReferenceName(tag), true)
	if err != nil {
		return "", fmt.Errorf("resolving tag %s: %w", tag, err)
	}

	if tagObj, err := c.repo.TagObject(ref.Hash()); err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return "", fmt.Errorf("resolving annotated tag %s target: %w", tag, err)
		}
		return commit.Hash.String(), nil
	}

	// Lightweight tag: the reference hash is the commit itself.
	return ref.Hash().String(), nil
}

// CreateTag creates an annotated tag named tag at HEAD.
func (c *Client) CreateTag(tag string) error {
	head, err := c.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	tagger := c.signature()
	_, err = c.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Tagger:  &tagger,
		Message: tag,
	})
	if err != nil {
		return fmt.Errorf("creating tag %s: %w", tag, err)
	}
	return nil
}

// DeleteLocalTag removes a tag from the local repository.
func (c *Client) DeleteLocalTag(tag string) error {
	if err := c.repo.DeleteTag(tag); err != nil {
		return fmt.Errorf("deleting local tag %s: %w", tag, err)
	}
	return nil
}
