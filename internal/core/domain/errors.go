package domain

import "go.trai.ch/zerr"

var (
	// ErrLockfileFormat is returned when a lockfile document is malformed.
	ErrLockfileFormat = zerr.New("malformed lockfile document")

	// ErrEmptySource is returned when a package entry has no source URL.
	ErrEmptySource = zerr.New("package source URL is empty")

	// ErrBadCommitHash is returned when a pinned commit is not a full 40-character hex hash.
	ErrBadCommitHash = zerr.New("pinned commit is not a full commit hash")

	// ErrEmptyPackageName is returned when a package entry has an empty name.
	ErrEmptyPackageName = zerr.New("package name is empty")

	// ErrNetwork is returned when a git transport operation fails.
	ErrNetwork = zerr.New("git transport failed")

	// ErrReferenceNotFound is returned when a pinned commit is absent from a repository's history.
	ErrReferenceNotFound = zerr.New("commit not found in repository history")

	// ErrFilesystem is returned when a package directory cannot be created or removed.
	ErrFilesystem = zerr.New("filesystem operation failed")

	// ErrGenerationNotFound is returned when a requested generation id is not in the store.
	ErrGenerationNotFound = zerr.New("generation not found")

	// ErrStoreCorrupt is returned when the active pointer references a missing generation
	// or a stored record fails its checksum.
	ErrStoreCorrupt = zerr.New("generation store is corrupt")

	// ErrNoActiveGeneration is returned when the store has no active pointer yet.
	ErrNoActiveGeneration = zerr.New("no active generation")

	// ErrStoreReadFailed is returned when a generation record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read generation record")

	// ErrStoreWriteFailed is returned when a generation record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write generation record")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrHookFailed is returned when a package build hook exits non-zero.
	ErrHookFailed = zerr.New("build hook failed")

	// ErrApplyFailed is returned by the orchestration layer when a plan finished with
	// at least one failed operation. The active pointer is left on the prior generation.
	ErrApplyFailed = zerr.New("install finished with failures")
)
