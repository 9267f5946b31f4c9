package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
)

// CommitRelease stages everything and creates the release commit.
func (c *Client) CommitRelease(message string) error {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}

	author := c.signature()
	if _, err := worktree.Commit(message, &git.CommitOptions{Author: &author}); err != nil {
		return fmt.Errorf("creating release commit: %w", err)
	}
	return nil
}

// Push pushes the current branch to origin. On failure the release commit is
// undone so the working tree is back where the run started.
func (c *Client) Push(ctx context.Context) error {
	head, err := c.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	spec := gitconfig.RefSpec(head.Name() + ":" + head.Name())
	if err := c.pushRefSpec(ctx, spec); err != nil {
		if undoErr := c.UndoCommit(); undoErr != nil {
			return fmt.Errorf("pushing branch: %w (rollback also failed: %v)", err, undoErr)
		}
		return fmt.Errorf("pushing branch (release commit undone): %w", err)
	}
	return nil
}

// PushTag pushes one tag to origin. On failure the local tag is deleted.
func (c *Client) PushTag(ctx context.Context, tag string) error {
	spec := gitconfig.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag))
	if err := c.pushRefSpec(ctx, spec); err != nil {
		if undoErr := c.DeleteLocalTag(tag); undoErr != nil {
			return fmt.Errorf("pushing tag %s: %w (rollback also failed: %v)", tag, err, undoErr)
		}
		return fmt.Errorf("pushing tag %s (local tag removed): %w", tag, err)
	}
	return nil
}

// DeleteRemoteTag removes a tag from origin.
func (c *Client) DeleteRemoteTag(ctx context.Context, tag string) error {
	spec := gitconfig.RefSpec(":refs/tags/" + tag)
	if err := c.pushRefSpec(ctx, spec); err != nil {
		return fmt.Errorf("deleting remote tag %s: %w", tag, err)
	}
	return nil
}

// UndoCommit hard-resets the working tree to the parent of HEAD, dropping
// the release commit after a failed push.
func (c *Client) UndoCommit() error {
	head, err := c.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	headCommit, err := c.repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("reading HEAD commit: %w", err)
	}

	parent, err := headCommit.Parent(0)
	if err != nil {
		return fmt.Errorf("reading HEAD parent: %w", err)
	}

	worktree, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	err = worktree.Reset(&git.ResetOptions{Mode: git.HardReset, Commit: parent.Hash})
	if err != nil {
		return fmt.Errorf("resetting to parent commit: %w", err)
	}
	return nil
}
