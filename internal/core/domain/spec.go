package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// CommitHashLength is the length of a full hex-encoded SHA-1 commit hash.
const CommitHashLength = 40

// PackageSpec is a single package pinned to an exact commit.
// Specs are created when a lockfile is authored and never mutated afterwards;
// the installer only ever creates, updates or deletes their on-disk clones.
type PackageSpec struct {
	// Source is the repository address the package is cloned from.
	Source string `json:"source"`

	// Reference is the symbolic ref the frontend resolved (branch or tag).
	// It is informational; installs always use PinnedCommit.
	Reference string `json:"reference"`

	// PinnedCommit is the full commit hash the package is locked to.
	// Always a complete hash, never a symbolic ref, so its meaning cannot
	// drift when the upstream ref moves.
	PinnedCommit string `json:"commit"`

	// Build is an optional command run in the package directory after a
	// successful clone or checkout.
	Build string `json:"build,omitempty"`
}

// Validate checks the invariants of a package spec.
func (s PackageSpec) Validate() error {
	if strings.TrimSpace(s.Source) == "" {
		return ErrEmptySource
	}
	if !IsCommitHash(s.PinnedCommit) {
		return zerr.With(ErrBadCommitHash, "commit", s.PinnedCommit)
	}
	return nil
}

// Equal reports whether two specs pin the same source and commit.
// Reference and build changes alone do not make a spec unequal; moving
// between generations only requires work when source or commit differ.
func (s PackageSpec) Equal(o PackageSpec) bool {
	return s.Source == o.Source && s.PinnedCommit == o.PinnedCommit
}

// IsCommitHash reports whether s is a full-length lowercase hex commit hash.
func IsCommitHash(s string) bool {
	if len(s) != CommitHashLength {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// InstallDirName derives the on-disk directory name for a package from its
// name. Names may be path-like ("folke/lazy.nvim"); the last segment is the
// directory, so the derivation is deterministic per name.
func InstallDirName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
