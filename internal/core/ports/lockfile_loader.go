package ports

import "github.com/pakrat/pakr/internal/core/domain"

// LockfileLoader parses a target lockfile document. The core is agnostic to
// how the document was produced; any frontend that resolves versions to
// pinned commits can sit behind this interface.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile_loader.go -destination=mocks/mock_lockfile_loader.go -package=mocks
type LockfileLoader interface {
	// Load reads and strictly validates the document at path. Any
	// violation is a format error; there is no partial parse.
	Load(path string) (domain.Lockfile, error)
}
