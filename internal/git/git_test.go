package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T, originURL string) (*Client, *gogit.Repository, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{originURL},
	})
	require.NoError(t, err)

	commitFile(t, repo, dir, "README.md", "hello", "chore: initial commit")

	client, err := Open(dir, "", "tester", "tester@example.com")
	require.NoError(t, err)
	return client, repo, dir
}

func commitFile(t *testing.T, repo *gogit.Repository, dir, relPath, contents, message string) plumbing.Hash {
	t.Helper()

	path := filepath.Join(dir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add(relPath)
	require.NoError(t, err)

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func TestOpenParsesOriginForms(t *testing.T) {
	tests := map[string]string{
		"scp style":           "git@github.com:acme/widgets.git",
		"https with suffix":   "https://github.com/acme/widgets.git",
		"https bare":          "https://github.com/acme/widgets",
		"https trailing slash": "https://github.com/acme/widgets/",
	}

	for name, url := range tests {
		t.Run(name, func(t *testing.T) {
			client, _, _ := initRepo(t, url)
			assert.Equal(t, "acme", client.Owner)
			assert.Equal(t, "widgets", client.Repo)
			assert.Equal(t, "https://github.com/acme/widgets", client.OriginURL())
		})
	}
}

func TestOpenRejectsUnparsableOrigin(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"ftp://example.com/whatever"},
	})
	require.NoError(t, err)

	_, err = Open(dir, "", "tester", "tester@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse origin URL")
}

func TestListTagsFiltersAndSorts(t *testing.T) {
	client, repo, _ := initRepo(t, "git@github.com:acme/widgets.git")

	head, err := repo.Head()
	require.NoError(t, err)

	for _, name := range []string{"v1.0.0", "v2.0.0-beta.1", "v1.2.0", "vnext", "a@v1.0.0", "release-1"} {
		_, err := repo.CreateTag(name, head.Hash(), nil)
		require.NoError(t, err)
	}

	tags, err := client.ListTags("v")
	require.NoError(t, err)

	var got []string
	for _, tag := range tags {
		got = append(got, tag.Tag())
	}
	assert.Equal(t, []string{"v2.0.0-beta.1", "v1.2.0", "v1.0.0"}, got)
}

func TestListTagsScopedPrefix(t *testing.T) {
	client, repo, _ := initRepo(t, "git@github.com:acme/widgets.git")

	head, err := repo.Head()
	require.NoError(t, err)
	for _, name := range []string{"v1.0.0", "a@v1.1.0", "b@v2.0.0"} {
		_, err := repo.CreateTag(name, head.Hash(), nil)
		require.NoError(t, err)
	}

	tags, err := client.ListTags("a@v")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "a@v1.1.0", tags[0].Tag())
}

func TestTagHead(t *testing.T) {
	client, repo, dir := initRepo(t, "git@github.com:acme/widgets.git")
	first, err := repo.Head()
	require.NoError(t, err)

	// Lightweight tag on the first commit.
	_, err = repo.CreateTag("v1.0.0", first.Hash(), nil)
	require.NoError(t, err)

	// Annotated tag on the second commit.
	second := commitFile(t, repo, dir, "file.txt", "x", "feat: second")
	require.NoError(t, client.CreateTag("v1.1.0"))

	head, err := client.TagHead("v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, first.Hash().String(), head)

	head, err = client.TagHead("v1.1.0")
	require.NoError(t, err)
	assert.Equal(t, second.String(), head)
}

func TestCommitsSinceExclusiveNewestFirst(t *testing.T) {
	client, repo, dir := initRepo(t, "git@github.com:acme/widgets.git")

	base, err := repo.Head()
	require.NoError(t, err)
	commitFile(t, repo, dir, "a.txt", "1", "feat: add a\n\nbody line")
	commitFile(t, repo, dir, "b.txt", "2", "fix: add b")

	records, err := client.Commits(base.Hash().String(), "")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "fix: add b", records[0].Subject)
	assert.Equal(t, "feat: add a", records[1].Subject)
	assert.Equal(t, "body line", records[1].Body)
	assert.Len(t, records[0].Hash, shortHashLen)
}

func TestCommitsEmptySinceReturnsAllHistory(t *testing.T) {
	client, repo, dir := initRepo(t, "git@github.com:acme/widgets.git")
	commitFile(t, repo, dir, "a.txt", "1", "feat: add a")

	records, err := client.Commits("", "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "chore: initial commit", records[1].Subject)
}

func TestCommitsPathScope(t *testing.T) {
	client, repo, dir := initRepo(t, "git@github.com:acme/widgets.git")

	commitFile(t, repo, dir, "packages/a/main.txt", "1", "feat(a): inside a")
	commitFile(t, repo, dir, "packages/b/main.txt", "2", "feat(b): inside b")
	commitFile(t, repo, dir, "packages/ab/main.txt", "3", "feat(ab): sibling prefix")

	records, err := client.Commits("", "packages/a")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "feat(a): inside a", records[0].Subject)
}

func TestCommitReleaseAndUndo(t *testing.T) {
	client, repo, dir := initRepo(t, "git@github.com:acme/widgets.git")
	base, err := repo.Head()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version":"1.1.0"}`), 0o644))
	require.NoError(t, client.CommitRelease("chore(release): v1.1.0"))

	head, err := repo.Head()
	require.NoError(t, err)
	assert.NotEqual(t, base.Hash(), head.Hash())

	obj, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "chore(release): v1.1.0", obj.Message)
	assert.Equal(t, "tester", obj.Author.Name)

	require.NoError(t, client.UndoCommit())
	head, err = repo.Head()
	require.NoError(t, err)
	assert.Equal(t, base.Hash(), head.Hash())
}

func TestCreateAndDeleteLocalTag(t *testing.T) {
	client, repo, _ := initRepo(t, "git@github.com:acme/widgets.git")

	require.NoError(t, client.CreateTag("v1.0.0"))
	_, err := repo.Reference(plumbing.NewTagReferenceName("v1.0.0"), true)
	require.NoError(t, err)

	require.NoError(t, client.DeleteLocalTag("v1.0.0"))
	_, err = repo.Reference(plumbing.NewTagReferenceName("v1.0.0"), true)
	require.Error(t, err)
}
