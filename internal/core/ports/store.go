package ports

import "github.com/pakrat/pakr/internal/core/domain"

// GenerationStore is the append-only persistence of committed generations
// plus the single atomically-updated active pointer. The handle owns the
// pointer state; callers thread it explicitly, it is never ambient.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GenerationStore interface {
	// Append writes lockfile as a new immutable generation record with the
	// current active id as parent and returns the assigned id. On failure
	// no pointer is moved and no partial record is left visible.
	Append(lockfile domain.Lockfile) (uint64, error)

	// Get returns the generation with the given id, or a not-found error.
	Get(id uint64) (domain.Lockfile, error)

	// ActiveID returns the id the active pointer references. ok is false
	// when no generation has been committed yet.
	ActiveID() (id uint64, ok bool, err error)

	// Active returns the generation the active pointer references. A
	// pointer naming a missing generation is a corruption error, surfaced
	// and never silently repaired.
	Active() (domain.Lockfile, error)

	// SetActive atomically replaces the pointer record. No resolution, no
	// network: this call is the basis of sub-second rollback.
	SetActive(id uint64) error

	// List returns all stored generations ordered by ascending id.
	List() ([]domain.Lockfile, error)
}
