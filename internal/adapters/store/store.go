// Package store persists generations as append-only records under the data
// directory, plus one small atomically-replaced active pointer record.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pakrat/pakr/internal/core/domain"
	"go.trai.ch/zerr"
)

const recordSuffix = ".json"

// record is the on-disk envelope of one generation. The payload is kept as
// raw bytes so reading a historical generation costs one checksum pass and
// one decode, never a re-resolution.
type record struct {
	Checksum string          `json:"checksum"`
	Lockfile json.RawMessage `json:"lockfile"`
}

// Store implements ports.GenerationStore with a file per generation. The
// handle owns the active pointer; it is loaded on open and replaced only via
// an atomic rename.
type Store struct {
	dir string

	mu     sync.Mutex
	nextID uint64
}

// NewStore opens (creating if needed) the generation store rooted at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "dir", dir)
	}

	maxID, err := scanMaxID(dir)
	if err != nil {
		return nil, err
	}

	return &Store{dir: dir, nextID: maxID + 1}, nil
}

// Append writes lockfile as a new immutable generation and returns its id.
// The record lands via write-temp-then-rename, so a crash mid-append leaves
// no partial record visible and the active pointer untouched.
func (s *Store) Append(lockfile domain.Lockfile) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activeID, hasActive, err := s.activeID()
	if err != nil {
		return 0, err
	}

	lockfile.ID = s.nextID
	lockfile.ParentID = nil
	if hasActive {
		parent := activeID
		lockfile.ParentID = &parent
	}
	lockfile.CreatedAt = time.Now().UTC()

	payload, err := json.MarshalIndent(lockfile, "", "  ")
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	data, err := json.MarshalIndent(record{
		Checksum: checksum(payload),
		Lockfile: payload,
	}, "", "  ")
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := s.writeAtomic(s.recordPath(lockfile.ID), data); err != nil {
		return 0, err
	}

	s.nextID++
	return lockfile.ID, nil
}

// Get returns the generation with the given id.
func (s *Store) Get(id uint64) (domain.Lockfile, error) {
	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Lockfile{}, zerr.With(domain.ErrGenerationNotFound, "id", id)
		}
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "id", id)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrStoreCorrupt.Error()), "id", id)
	}

	if checksum(rec.Lockfile) != rec.Checksum {
		return domain.Lockfile{}, zerr.With(domain.ErrStoreCorrupt, "id", id)
	}

	var lockfile domain.Lockfile
	if err := json.Unmarshal(rec.Lockfile, &lockfile); err != nil {
		return domain.Lockfile{}, zerr.With(zerr.Wrap(err, domain.ErrStoreCorrupt.Error()), "id", id)
	}
	return lockfile, nil
}

// ActiveID returns the id the active pointer references; ok is false when no
// generation has been committed yet.
func (s *Store) ActiveID() (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID()
}

func (s *Store) activeID() (uint64, bool, error) {
	data, err := os.ReadFile(s.pointerPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	id, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false, zerr.With(zerr.Wrap(err, domain.ErrStoreCorrupt.Error()), "pointer", string(data))
	}
	return id, true, nil
}

// Active returns the generation the active pointer references. A pointer
// naming a missing generation is a corruption error and is never repaired
// here; the operator chooses which generation to restore.
func (s *Store) Active() (domain.Lockfile, error) {
	id, ok, err := s.ActiveID()
	if err != nil {
		return domain.Lockfile{}, err
	}
	if !ok {
		return domain.Lockfile{}, domain.ErrNoActiveGeneration
	}

	lockfile, err := s.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrGenerationNotFound) {
			return domain.Lockfile{}, zerr.With(domain.ErrStoreCorrupt, "active_id", id)
		}
		return domain.Lockfile{}, err
	}
	return lockfile, nil
}

// SetActive atomically repoints the active pointer at an existing
// generation. No resolution, no network access.
func (s *Store) SetActive(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.recordPath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrGenerationNotFound, "id", id)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "id", id)
	}

	return s.writeAtomic(s.pointerPath(), []byte(strconv.FormatUint(id, 10)+"\n"))
}

// List returns all stored generations ordered by ascending id.
func (s *Store) List() ([]domain.Lockfile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var generations []domain.Lockfile
	for _, entry := range entries {
		id, ok := parseRecordName(entry.Name())
		if !ok {
			continue
		}
		lockfile, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		generations = append(generations, lockfile)
	}

	sort.Slice(generations, func(i, j int) bool { return generations[i].ID < generations[j].ID })
	return generations, nil
}

// writeAtomic writes data to a sibling temp file and renames it into place.
func (s *Store) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) recordPath(id uint64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%010d%s", id, recordSuffix))
}

func (s *Store) pointerPath() string {
	return filepath.Join(s.dir, domain.ActivePointerFileName)
}

func checksum(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}

func parseRecordName(name string) (uint64, bool) {
	if !strings.HasSuffix(name, recordSuffix) {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimSuffix(name, recordSuffix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func scanMaxID(dir string) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var maxID uint64
	for _, entry := range entries {
		if id, ok := parseRecordName(entry.Name()); ok && id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}
