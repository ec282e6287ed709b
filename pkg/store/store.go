package store

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// Store maps managed target paths to their source paths
type Store struct {
	path    string
	entries map[string]string
	dirty   bool
}

// New returns an empty store that saves to path
func New(path string) *Store {
	return &Store{
		path:    path,
		entries: make(map[string]string),
	}
}

// Load reads the store at path. A missing file yields an empty store; nothing
// is created on disk until Save. A file that cannot be decoded is an error.
func Load(path string) (*Store, error) {
	logger := logging.GetLogger("store")

	if path == "" {
		return nil, errors.New(errors.ErrStoreLoad, "store path is empty")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("No store found, starting empty")
		return New(path), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreLoad, "failed to read store").
			WithDetail("path", path)
	}

	entries, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreLoad, "failed to decode store").
			WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Int("entries", len(entries)).Msg("Store loaded")
	return &Store{path: path, entries: entries}, nil
}

// Path returns the file the store saves to
func (s *Store) Path() string {
	return s.path
}

// Save writes the store to its file atomically: the encoded map is written to
// a temporary file in the same directory, synced, and renamed into place.
func (s *Store) Save() error {
	if s.path == "" {
		return errors.New(errors.ErrStoreSave, "store path is empty")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to create store directory").
			WithDetail("path", s.path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to create temporary store file").
			WithDetail("path", s.path)
	}
	tmpPath := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(encode(s.entries)); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to write store").
			WithDetail("path", s.path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to sync store").
			WithDetail("path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to close store").
			WithDetail("path", s.path)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.Wrapf(err, errors.ErrStoreSave, "failed to replace store").
			WithDetail("path", s.path)
	}

	s.dirty = false
	logger := logging.GetLogger("store")
	logger.Debug().
		Str("path", s.path).
		Int("entries", len(s.entries)).
		Msg("Store saved")
	return nil
}

// Insert records target as managed and linked from source
func (s *Store) Insert(target, source string) {
	if current, ok := s.entries[target]; ok && current == source {
		return
	}
	s.entries[target] = source
	s.dirty = true
}

// Retire removes the entry for target, if any
func (s *Store) Retire(target string) {
	if _, ok := s.entries[target]; !ok {
		return
	}
	delete(s.entries, target)
	s.dirty = true
}

// Get returns the source recorded for target
func (s *Store) Get(target string) (string, bool) {
	source, ok := s.entries[target]
	return source, ok
}

// Has reports whether target is managed
func (s *Store) Has(target string) bool {
	_, ok := s.entries[target]
	return ok
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// Dirty reports whether the store changed since it was loaded or last saved
func (s *Store) Dirty() bool {
	return s.dirty
}

// Entries returns all entries sorted by target path
func (s *Store) Entries() []types.Link {
	links := make([]types.Link, 0, len(s.entries))
	for target, source := range s.entries {
		links = append(links, types.Link{Source: source, Target: target})
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].Target < links[j].Target
	})
	return links
}

// Under returns the entries whose target lies under targetRoot and whose
// source lies under pkgRoot, sorted by target path. Both tests are path
// segment aware.
func (s *Store) Under(targetRoot, pkgRoot string) []types.Link {
	var links []types.Link
	for _, link := range s.Entries() {
		if paths.IsWithin(link.Target, targetRoot) && paths.IsWithin(link.Source, pkgRoot) {
			links = append(links, link)
		}
	}
	return links
}
