package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Lockfile is one fully-resolved snapshot of package specs: the document form
// of a generation. A lockfile is authored externally (resolution) or selected
// from history (rollback); it becomes a generation when the store appends it
// after a fully-attempted install. Once appended, Packages is immutable.
type Lockfile struct {
	// ID is the generation id assigned by the store. Zero until appended.
	ID uint64 `json:"id"`

	// ParentID is the generation that was active when this one was appended.
	// Nil for the first generation.
	ParentID *uint64 `json:"parent_id,omitempty"`

	// Packages maps package name to its pinned spec. Keys are unique by
	// construction of the mapping.
	Packages map[string]PackageSpec `json:"packages"`

	// CreatedAt is the time the generation was appended to the store.
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks every package spec in the lockfile.
func (l Lockfile) Validate() error {
	for name, spec := range l.Packages {
		if name == "" {
			return ErrEmptyPackageName
		}
		if err := spec.Validate(); err != nil {
			return zerr.With(err, "package", name)
		}
	}
	return nil
}

// Names returns the package names in the lockfile, unordered.
func (l Lockfile) Names() []string {
	names := make([]string, 0, len(l.Packages))
	for name := range l.Packages {
		names = append(names, name)
	}
	return names
}

// Equal reports whether two lockfiles describe the same set of pinned
// packages. Ids and timestamps are not compared; rollback to a generation
// whose packages match the active one yields an all-noop plan.
func (l Lockfile) Equal(o Lockfile) bool {
	if len(l.Packages) != len(o.Packages) {
		return false
	}
	for name, spec := range l.Packages {
		other, ok := o.Packages[name]
		if !ok || spec != other {
			return false
		}
	}
	return true
}
