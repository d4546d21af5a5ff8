package domain

import (
	"os"
	"path/filepath"
)

const (
	// PakrDirName is the name of the pakr data directory inside the
	// platform configuration directory.
	PakrDirName = "pakr"

	// GenerationsDirName is the directory holding generation records and
	// the active pointer inside the data directory.
	GenerationsDirName = "generations"

	// PackagesDirName is the directory package clones live in.
	PackagesDirName = "packages"

	// ActivePointerFileName is the single small record naming the active
	// generation id.
	ActivePointerFileName = "active"

	// SettingsFileName is the name of the optional settings file.
	SettingsFileName = "pakr.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultDataDir returns the pakr data directory under the platform
// configuration directory. Resolution policy beyond this default belongs to
// the caller; the settings file can override it.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, PakrDirName), nil
}

// GenerationsDir returns the generation store directory under dataDir.
func GenerationsDir(dataDir string) string {
	return filepath.Join(dataDir, GenerationsDirName)
}

// PackagesDir returns the package clone root under dataDir.
func PackagesDir(dataDir string) string {
	return filepath.Join(dataDir, PackagesDirName)
}
