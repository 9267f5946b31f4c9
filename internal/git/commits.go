package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ariel-frischer/relkit/internal/commit"
)

// shortHashLen matches the abbreviated hash length used in changelog links.
const shortHashLen = 7

// Commits returns the commit records from HEAD back to (and excluding)
// sinceCommit, newest first. An empty sinceCommit means all history. A
// non-empty pathScope restricts the log to commits touching files under that
// directory.
func (c *Client) Commits(sinceCommit, pathScope string) ([]commit.Record, error) {
	head, err := c.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	opts := &git.LogOptions{From: head.Hash()}
	if pathScope != "" {
		scope := strings.TrimSuffix(pathScope, "/")
		opts.PathFilter = func(path string) bool {
			return path == scope || strings.HasPrefix(path, scope+"/")
		}
	}

	iter, err := c.repo.Log(opts)
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}

	var records []commit.Record
	err = iter.ForEach(func(obj *object.Commit) error {
		if sinceCommit != "" && obj.Hash.String() == sinceCommit {
			return storer.ErrStop
		}
		records = append(records, toRecord(obj))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commit log: %w", err)
	}

	return records, nil
}

// toRecord splits a commit message into subject and body.
func toRecord(obj *object.Commit) commit.Record {
	subject, body, _ := strings.Cut(obj.Message, "\n")
	return commit.Record{
		Hash:    obj.Hash.String()[:shortHashLen],
		Subject: strings.TrimRight(subject, "\r"),
		Body:    strings.TrimSpace(body),
	}
}
