// Package cas implements the persisted project cache store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore using a flat JSON file keyed by project directory.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.CacheRecord
}

// NewStore creates a new CacheStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := Empty(path)
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Empty creates a store that ignores any existing file at path and overwrites it on the next Put.
// An empty path keeps records in memory only.
func Empty(path string) *Store {
	if path != "" {
		path = filepath.Clean(path)
	}
	return &Store{
		path:  path,
		cache: make(map[string]domain.CacheRecord),
	}
}

func (s *Store) load() error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read cache store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	var records map[string]domain.CacheRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal cache store"), "path", s.path)
	}
	// A literal null decodes without error into a nil map.
	if records != nil {
		s.cache = records
	}

	return nil
}

// save writes the records to disk. Callers hold mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for cache store")
	}

	// Write to a sibling file and rename so concurrent readers never see a partial file.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary cache store")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write cache store")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write cache store")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace cache store"), "path", s.path)
	}

	return nil
}

// Get retrieves the record for a project directory.
func (s *Store) Get(dir domain.ProjectDir) (*domain.CacheRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[dir.String()]
	if !ok {
		return nil, nil
	}
	record.IncludePaths = slices.Clone(record.IncludePaths)
	return &record, nil
}

// Put stores the record, replacing any earlier record of the same project.
func (s *Store) Put(record domain.CacheRecord) error {
	if record.ProjectDir == "" {
		return zerr.New("cache record without project directory")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.IncludePaths = slices.Clone(record.IncludePaths)
	s.cache[record.ProjectDir] = record
	return s.save()
}

// List returns all records ordered by project directory.
func (s *Store) List() ([]domain.CacheRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := slices.Collect(maps.Values(s.cache))
	slices.SortFunc(records, func(a, b domain.CacheRecord) int {
		return strings.Compare(a.ProjectDir, b.ProjectDir)
	})
	return records, nil
}

// Clear removes every record and the backing file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]domain.CacheRecord)
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache store"), "path", s.path)
	}
	return nil
}
