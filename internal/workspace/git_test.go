package workspace

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_GLOBAL=/dev/null",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	gitRun(t, dir, "init", "-q", "-b", "main")
	writeFile(t, filepath.Join(dir, "posts", "old.md"), "old post")
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func TestNewGitDiff_Defaults(t *testing.T) {
	g := NewGitDiff(".", "", "", "posts/*.md")
	assert.Equal(t, "origin/main...HEAD", g.Range())

	g = NewGitDiff(".", "main", "feature", "")
	assert.Equal(t, "main...feature", g.Range())
}

func TestGitDiff_Documents(t *testing.T) {
	dir := initRepo(t)
	gitRun(t, dir, "checkout", "-q", "-b", "feature")
	writeFile(t, filepath.Join(dir, "posts", "new.md"), "new post")
	writeFile(t, filepath.Join(dir, "posts", "draft.txt"), "not markdown")
	writeFile(t, filepath.Join(dir, "README.md"), "outside posts")
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-q", "-m", "add post")

	docs, err := NewGitDiff(dir, "main", "HEAD", "posts/*.md").Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/new.md"}, docs)
}

func TestGitDiff_NoChanges(t *testing.T) {
	dir := initRepo(t)

	docs, err := NewGitDiff(dir, "main", "HEAD", "posts/*.md").Documents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestGitDiff_BadRef(t *testing.T) {
	dir := initRepo(t)

	_, err := NewGitDiff(dir, "does-not-exist", "HEAD", "posts/*.md").Documents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist...HEAD")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a.md", "b.md"}, splitLines([]byte("a.md\n\n b.md \n")))
	assert.Empty(t, splitLines(nil))
}

func TestGitDiff_NestedRoot(t *testing.T) {
	dir := initRepo(t)
	site := filepath.Join(dir, "site")
	gitRun(t, dir, "checkout", "-q", "-b", "feature")
	writeFile(t, filepath.Join(site, "posts", "new.md"), "nested post")
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-q", "-m", "add nested post")

	docs, err := NewGitDiff(site, "main", "HEAD", "posts/*.md").Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/new.md"}, docs)

	got, err := NewFSReader(site).ReadFile(docs[0])
	require.NoError(t, err)
	assert.Equal(t, "nested post", got)
}

func TestGitDiff_MatchesGlobDepth(t *testing.T) {
	dir := initRepo(t)
	gitRun(t, dir, "checkout", "-q", "-b", "feature")
	writeFile(t, filepath.Join(dir, "posts", "top.md"), "top")
	writeFile(t, filepath.Join(dir, "posts", "drafts", "deep.md"), "deep")
	gitRun(t, dir, "add", ".")
	gitRun(t, dir, "commit", "-q", "-m", "add posts")

	docs, err := NewGitDiff(dir, "main", "HEAD", "posts/*.md").Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"posts/top.md"}, docs)

	all, err := NewGlobSource(dir, "posts/*.md").Documents(context.Background())
	require.NoError(t, err)
	assert.Subset(t, all, docs)
	assert.NotContains(t, all, "posts/drafts/deep.md")
}
