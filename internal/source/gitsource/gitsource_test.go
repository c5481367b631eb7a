package gitsource_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dloez/tag-track/internal/source/gitsource"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "user.email", "test@example.com")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "git %v failed\n%s", args, out)
	return string(out)
}

func commit(t *testing.T, dir, message string) string {
	t.Helper()
	runGit(t, dir, "commit", "--allow-empty", "-m", message)
	return trimmedRevParse(t, dir, "HEAD")
}

func trimmedRevParse(t *testing.T, dir, rev string) string {
	t.Helper()
	out := runGit(t, dir, "rev-parse", rev)
	for len(out) > 0 && (out[len(out)-1] == '\n' || out[len(out)-1] == '\r') {
		out = out[:len(out)-1]
	}
	return out
}

func TestSource_ResolveHead(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dir := setupTestRepo(t)
	c1 := commit(t, dir, "chore: initial")

	src := gitsource.New(dir)
	head, err := src.ResolveHead(context.Background())
	require.NoError(t, err)
	require.Equal(t, c1, head)
}

func TestSource_ClosestTagsOrdersByDistance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dir := setupTestRepo(t)

	c1 := commit(t, dir, "chore: baseline")
	runGit(t, dir, "tag", "-a", "1.0.0", "-m", "v1", c1)
	commit(t, dir, "fix: a")
	c3 := commit(t, dir, "fix: b")

	src := gitsource.New(dir)
	it, err := src.ClosestTags(context.Background(), c3)
	require.NoError(t, err)

	tag, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1.0.0", tag.Name)
	require.Equal(t, c1, tag.CommitID)

	_, ok, err = it.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSource_CommitsBetweenExcludesBaselineIncludesHead(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dir := setupTestRepo(t)

	c1 := commit(t, dir, "chore: baseline")
	c2 := commit(t, dir, "fix: a")
	c3 := commit(t, dir, "fix: b")

	src := gitsource.New(dir)
	it, err := src.CommitsBetween(context.Background(), c1, c3)
	require.NoError(t, err)

	first, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, c2, first.ID)
	require.Equal(t, "fix: a", first.Message)

	second, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, c3, second.ID)

	_, ok, err = it.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSource_CreateTagThenConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dir := setupTestRepo(t)
	c1 := commit(t, dir, "chore: baseline")

	src := gitsource.New(dir)
	err := src.CreateTag(context.Background(), c1, "1.0.1", "Version 1.0.1")
	require.NoError(t, err)

	err = src.CreateTag(context.Background(), c1, "1.0.1", "Version 1.0.1 again")
	require.Error(t, err)
}
