// Package git implements the source backend on top of go-git. All repository
// operations run in-process; pakr never shells out to a git binary.
package git

import (
	"context"
	"errors"
	"os"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/pakrat/pakr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Source implements ports.Source using go-git.
type Source struct {
	logger ports.Logger
}

// NewSource creates a new go-git source backend.
func NewSource(logger ports.Logger) *Source {
	return &Source{logger: logger}
}

// Clone clones the spec's repository into dest and leaves the working tree
// detached at the pinned commit. A repository already present at dest, such
// as a clone that survived a partially-failed batch, is reused through the
// checkout path instead of re-cloned; its object store may hold the only
// local copy of commits older generations pin. A partially-written dest is
// removed on failure only when the clone itself created it.
func (s *Source) Clone(ctx context.Context, spec domain.PackageSpec, dest string) error {
	if _, err := gogit.PlainOpen(dest); err == nil {
		s.logger.Info("reusing existing clone at " + dest)
		return s.Checkout(ctx, dest, spec.PinnedCommit)
	}

	_, statErr := os.Stat(dest)
	existedBefore := statErr == nil

	repo, err := gogit.PlainCloneContext(ctx, dest, false, &gogit.CloneOptions{
		URL:  spec.Source,
		Tags: gogit.AllTags,
	})
	if err != nil {
		if !existedBefore {
			_ = os.RemoveAll(dest)
		}
		return zerr.With(classifyCloneError(err), "source", spec.Source)
	}

	if err := detach(repo, spec.PinnedCommit); err != nil {
		if !existedBefore {
			_ = os.RemoveAll(dest)
		}
		return zerr.With(err, "source", spec.Source)
	}
	return nil
}

// Checkout resets the existing repository at dest to the pinned commit.
// The commit is looked up locally first; the remote is contacted only when
// the object is missing, so moving back to a previously-fetched commit
// never touches the network.
func (s *Source) Checkout(ctx context.Context, dest, pinnedCommit string) error {
	repo, err := gogit.PlainOpen(dest)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFilesystem.Error()), "dest", dest)
	}

	hash := plumbing.NewHash(pinnedCommit)
	if _, err := repo.CommitObject(hash); err != nil {
		if !errors.Is(err, plumbing.ErrObjectNotFound) {
			return zerr.With(zerr.Wrap(err, domain.ErrFilesystem.Error()), "dest", dest)
		}

		s.logger.Info("fetching " + dest)
		fetchErr := repo.FetchContext(ctx, &gogit.FetchOptions{
			RemoteName: gogit.DefaultRemoteName,
			Tags:       gogit.AllTags,
		})
		if fetchErr != nil && !errors.Is(fetchErr, gogit.NoErrAlreadyUpToDate) {
			return zerr.With(zerr.Wrap(fetchErr, domain.ErrNetwork.Error()), "dest", dest)
		}
	}

	return detach(repo, pinnedCommit)
}

// Remove deletes the package directory tree. Removing a directory that does
// not exist is not an error.
func (s *Source) Remove(dest string) error {
	if err := os.RemoveAll(dest); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFilesystem.Error()), "dest", dest)
	}
	return nil
}

// classifyCloneError maps a clone failure to a domain sentinel. Local causes
// such as an unwritable destination or a racing clone surface as filesystem
// errors; everything else is attributed to the transport.
func classifyCloneError(err error) error {
	var pathErr *os.PathError
	if errors.Is(err, gogit.ErrRepositoryAlreadyExists) || errors.As(err, &pathErr) {
		return zerr.Wrap(err, domain.ErrFilesystem.Error())
	}
	return zerr.Wrap(err, domain.ErrNetwork.Error())
}

// detach verifies the commit exists locally and force-checks-out the working
// tree at it, leaving HEAD detached.
func detach(repo *gogit.Repository, pinnedCommit string) error {
	hash := plumbing.NewHash(pinnedCommit)
	if _, err := repo.CommitObject(hash); err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return zerr.With(domain.ErrReferenceNotFound, "commit", pinnedCommit)
		}
		return zerr.Wrap(err, domain.ErrFilesystem.Error())
	}

	wt, err := repo.Worktree()
	if err != nil {
		return zerr.Wrap(err, domain.ErrFilesystem.Error())
	}

	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFilesystem.Error()), "commit", pinnedCommit)
	}
	return nil
}
