// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/pakrat/pakr/internal/core/domain"
)

// Source performs repository operations for a single package. Implementations
// talk the git protocol directly through a library; they never shell out to
// an external process.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type Source interface {
	// Clone creates dest, clones the spec's source into it and resolves the
	// working tree to the pinned commit in detached state. A transport
	// failure yields a network error; a commit missing from the remote's
	// history yields a reference error.
	Clone(ctx context.Context, spec domain.PackageSpec, dest string) error

	// Checkout resets an existing local repository at dest to the pinned
	// commit. It fetches only when the commit is not already present
	// locally, which is what makes rollback to a previously-installed
	// commit work without network access.
	Checkout(ctx context.Context, dest, pinnedCommit string) error

	// Remove deletes the package directory tree at dest.
	Remove(dest string) error
}
