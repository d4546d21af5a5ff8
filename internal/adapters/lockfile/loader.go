// Package lockfile reads resolved lockfiles produced by the frontend. The
// loader is strict: every entry must already carry a full commit pin, and
// unknown fields are rejected rather than ignored.
package lockfile

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pakrat/pakr/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.LockfileLoader for JSON lockfiles on disk.
type Loader struct{}

// NewLoader creates a lockfile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates the lockfile at path. The result carries no id or
// parent; those are assigned when the generation is committed to the store.
func (l *Loader) Load(path string) (domain.Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrFilesystem.Error()), "path", path)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var packages map[string]domain.PackageSpec
	if err := decoder.Decode(&packages); err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrLockfileFormat.Error()), "path", path)
	}

	lockfile := domain.Lockfile{Packages: packages}
	if err := lockfile.Validate(); err != nil {
		return domain.Lockfile{}, zerr.With(err, "path", path)
	}
	return lockfile, nil
}
