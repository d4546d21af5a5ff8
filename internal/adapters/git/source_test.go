package git_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pakrat/pakr/internal/adapters/git"
	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

// commitFile writes content to name in the repository worktree and commits it,
// returning the commit hash.
func commitFile(t *testing.T, repo *gogit.Repository, dir, name, content string) string {
	t.Helper()

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit("add "+name, &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

// newUpstream creates a local repository with one initial commit.
func newUpstream(t *testing.T) (dir string, repo *gogit.Repository, c1 string) {
	t.Helper()

	dir = t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	c1 = commitFile(t, repo, dir, "init.lua", "print('v1')")
	return dir, repo, c1
}

func TestSource_Clone(t *testing.T) {
	upstream, _, c1 := newUpstream(t)
	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{Source: upstream, Reference: "master", PinnedCommit: c1}
	require.NoError(t, source.Clone(context.Background(), spec, dest))

	// Working tree is resolved to the pinned commit, detached.
	cloned, err := gogit.PlainOpen(dest)
	require.NoError(t, err)
	head, err := cloned.Head()
	require.NoError(t, err)
	assert.Equal(t, c1, head.Hash().String())

	content, err := os.ReadFile(filepath.Join(dest, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "print('v1')", string(content))
}

func TestSource_Clone_PinnedToOlderCommit(t *testing.T) {
	upstream, repo, c1 := newUpstream(t)
	commitFile(t, repo, upstream, "init.lua", "print('v2')")

	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{Source: upstream, Reference: "master", PinnedCommit: c1}
	require.NoError(t, source.Clone(context.Background(), spec, dest))

	content, err := os.ReadFile(filepath.Join(dest, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "print('v1')", string(content))
}

func TestSource_Clone_UnknownCommit(t *testing.T) {
	upstream, _, _ := newUpstream(t)
	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{
		Source:       upstream,
		Reference:    "master",
		PinnedCommit: strings.Repeat("d", 40),
	}
	err := source.Clone(context.Background(), spec, dest)
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)

	// No partial clone left behind.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSource_Clone_ReusesExistingClone(t *testing.T) {
	upstream, repo, c1 := newUpstream(t)
	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{Source: upstream, Reference: "master", PinnedCommit: c1}
	require.NoError(t, source.Clone(context.Background(), spec, dest))

	// A retried clone into an existing repository must not destroy it.
	require.NoError(t, source.Clone(context.Background(), spec, dest))
	content, err := os.ReadFile(filepath.Join(dest, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "print('v1')", string(content))

	// Cloning a newer pin over the existing repository fetches into it
	// instead of re-cloning.
	c2 := commitFile(t, repo, upstream, "init.lua", "print('v2')")
	spec.PinnedCommit = c2
	require.NoError(t, source.Clone(context.Background(), spec, dest))

	content, err = os.ReadFile(filepath.Join(dest, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "print('v2')", string(content))
}

func TestSource_Clone_DestinationNotWritable(t *testing.T) {
	upstream, _, c1 := newUpstream(t)
	source := git.NewSource(nopLogger{})

	// A regular file where a parent directory should be makes the clone fail
	// locally before any transport is involved.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	dest := filepath.Join(blocker, "pkg")

	spec := domain.PackageSpec{Source: upstream, Reference: "master", PinnedCommit: c1}
	err := source.Clone(context.Background(), spec, dest)
	require.ErrorIs(t, err, domain.ErrFilesystem)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
}

func TestSource_Clone_TransportFailure(t *testing.T) {
	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{
		Source:       filepath.Join(t.TempDir(), "does-not-exist"),
		Reference:    "master",
		PinnedCommit: strings.Repeat("a", 40),
	}
	err := source.Clone(context.Background(), spec, dest)
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestSource_Checkout_FetchesMissingCommit(t *testing.T) {
	upstream, repo, c1 := newUpstream(t)
	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{Source: upstream, Reference: "master", PinnedCommit: c1}
	require.NoError(t, source.Clone(context.Background(), spec, dest))

	// A commit created after the clone is only available upstream.
	c2 := commitFile(t, repo, upstream, "init.lua", "print('v2')")
	require.NoError(t, source.Checkout(context.Background(), dest, c2))

	content, err := os.ReadFile(filepath.Join(dest, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "print('v2')", string(content))
}

func TestSource_Checkout_LocalFirstNeedsNoRemote(t *testing.T) {
	upstream, repo, c1 := newUpstream(t)
	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{Source: upstream, Reference: "master", PinnedCommit: c1}
	require.NoError(t, source.Clone(context.Background(), spec, dest))

	c2 := commitFile(t, repo, upstream, "init.lua", "print('v2')")
	require.NoError(t, source.Checkout(context.Background(), dest, c2))

	// With the upstream gone, rolling back to the previously fetched commit
	// must still succeed: the object is already local.
	require.NoError(t, os.RemoveAll(upstream))
	require.NoError(t, source.Checkout(context.Background(), dest, c1))

	content, err := os.ReadFile(filepath.Join(dest, "init.lua"))
	require.NoError(t, err)
	assert.Equal(t, "print('v1')", string(content))
}

func TestSource_Checkout_UnknownCommit(t *testing.T) {
	upstream, _, c1 := newUpstream(t)
	source := git.NewSource(nopLogger{})
	dest := filepath.Join(t.TempDir(), "pkg")

	spec := domain.PackageSpec{Source: upstream, Reference: "master", PinnedCommit: c1}
	require.NoError(t, source.Clone(context.Background(), spec, dest))

	err := source.Checkout(context.Background(), dest, strings.Repeat("e", 40))
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestSource_Remove(t *testing.T) {
	source := git.NewSource(nopLogger{})

	dir := filepath.Join(t.TempDir(), "pkg")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lua"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lua", "a.lua"), []byte("x"), 0o644))

	require.NoError(t, source.Remove(dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// Removing a directory that never existed is fine.
	require.NoError(t, source.Remove(dir))
}
