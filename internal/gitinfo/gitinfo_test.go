package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, repo *git.Repository, root, name, content string) string {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o600))
	_, err = wt.Add(name)
	require.NoError(t, err)
	hash, err := wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestHead(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	hash := commitFile(t, repo, root, "blogsite.yaml", "title: T\n")

	sub := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	info, err := Head(sub)
	require.NoError(t, err)
	assert.Equal(t, hash, info.Commit)
	assert.Equal(t, hash[:8], info.Short())
	assert.Equal(t, "master", info.Branch)
	assert.False(t, info.Dirty)
	assert.Equal(t, 2026, info.CommittedAt.Year())

	require.NoError(t, os.WriteFile(filepath.Join(root, "blogsite.yaml"), []byte("title: U\n"), 0o600))
	info, err = Head(root)
	require.NoError(t, err)
	assert.True(t, info.Dirty)
}

func TestHeadOutsideRepository(t *testing.T) {
	_, err := Head(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
}
