package domain_test

import (
	"strings"
	"testing"

	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockfile_Validate(t *testing.T) {
	lf := domain.Lockfile{Packages: map[string]domain.PackageSpec{
		"foo/bar.nvim": {Source: "https://example.com/bar.git", PinnedCommit: testCommit},
	}}
	require.NoError(t, lf.Validate())

	lf.Packages["broken"] = domain.PackageSpec{Source: "https://example.com/x.git", PinnedCommit: "HEAD"}
	assert.ErrorIs(t, lf.Validate(), domain.ErrBadCommitHash)
}

func TestLockfile_Equal(t *testing.T) {
	base := domain.Lockfile{ID: 1, Packages: map[string]domain.PackageSpec{
		"foo": {Source: "https://example.com/foo.git", PinnedCommit: testCommit},
	}}

	t.Run("id and timestamp ignored", func(t *testing.T) {
		other := domain.Lockfile{ID: 9, Packages: map[string]domain.PackageSpec{
			"foo": {Source: "https://example.com/foo.git", PinnedCommit: testCommit},
		}}
		assert.True(t, base.Equal(other))
	})

	t.Run("extra package", func(t *testing.T) {
		other := domain.Lockfile{Packages: map[string]domain.PackageSpec{
			"foo": {Source: "https://example.com/foo.git", PinnedCommit: testCommit},
			"bar": {Source: "https://example.com/bar.git", PinnedCommit: strings.Repeat("a", 40)},
		}}
		assert.False(t, base.Equal(other))
	})
}
