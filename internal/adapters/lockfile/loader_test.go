package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pakrat/pakr/internal/adapters/lockfile"
	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pakr.lock.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeLockfile(t, `{
  "telescope.nvim": {
    "source": "https://github.com/nvim-telescope/telescope.nvim",
    "reference": "0.1.x",
    "commit": "0123456789abcdef0123456789abcdef01234567"
  },
  "plenary.nvim": {
    "source": "https://github.com/nvim-lua/plenary.nvim",
    "reference": "master",
    "commit": "abcdefabcdefabcdefabcdefabcdefabcdefabcd",
    "build": "make"
  }
}`)

	got, err := lockfile.NewLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, got.Packages, 2)

	spec := got.Packages["telescope.nvim"]
	assert.Equal(t, "https://github.com/nvim-telescope/telescope.nvim", spec.Source)
	assert.Equal(t, "0.1.x", spec.Reference)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", spec.PinnedCommit)
	assert.Empty(t, spec.Build)

	assert.Equal(t, "make", got.Packages["plenary.nvim"].Build)
	assert.Zero(t, got.ID)
	assert.Nil(t, got.ParentID)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := lockfile.NewLoader().Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, domain.ErrFilesystem)
}

func TestLoader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "malformed json",
			content: `{"telescope.nvim": {`,
			want:    domain.ErrLockfileFormat,
		},
		{
			name: "unknown field",
			content: `{"a": {
  "source": "https://github.com/acme/a",
  "commit": "0123456789abcdef0123456789abcdef01234567",
  "branch": "main"
}}`,
			want: domain.ErrLockfileFormat,
		},
		{
			name: "empty source",
			content: `{"a": {
  "source": "",
  "commit": "0123456789abcdef0123456789abcdef01234567"
}}`,
			want: domain.ErrEmptySource,
		},
		{
			name: "unpinned commit",
			content: `{"a": {
  "source": "https://github.com/acme/a",
  "commit": "v1.2.3"
}}`,
			want: domain.ErrBadCommitHash,
		},
		{
			name: "short commit",
			content: `{"a": {
  "source": "https://github.com/acme/a",
  "commit": "0123456"
}}`,
			want: domain.ErrBadCommitHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lockfile.NewLoader().Load(writeLockfile(t, tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
