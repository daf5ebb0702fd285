// Package jsonfile implements stores backed by a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/i2edit/internal/core/recent"
)

// RecentFile is the root JSON structure stored on disk.
type RecentFile struct {
	Entries []recent.Entry `json:"entries"`
}

// RecentStore implements recent.Store using a JSON file for persistence.
type RecentStore struct {
	path string
	mu   sync.RWMutex
}

var _ recent.Store = (*RecentStore)(nil)

// NewRecentStore creates a new JSON file recent documents store at the given path.
func NewRecentStore(path string) *RecentStore {
	return &RecentStore{path: path}
}

// List returns all entries, newest first.
func (s *RecentStore) List(ctx context.Context) ([]recent.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Entries, nil
}

// Get returns the entry for path. Returns recent.ErrNotFound if not found.
func (s *RecentStore) Get(ctx context.Context, path string) (recent.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return recent.Entry{}, err
	}

	for _, entry := range file.Entries {
		if entry.Path == path {
			return entry, nil
		}
	}

	return recent.Entry{}, recent.ErrNotFound
}

// Touch moves entry to the front, pruning old entries to stay within maxEntries.
func (s *RecentStore) Touch(ctx context.Context, entry recent.Entry, maxEntries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	entries := make([]recent.Entry, 0, len(file.Entries)+1)
	entries = append(entries, entry)
	for _, e := range file.Entries {
		if e.Path != entry.Path {
			entries = append(entries, e)
		}
	}

	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	file.Entries = entries
	return s.save(file)
}

// Remove deletes the entry for path. Removing an unknown path is a no-op.
func (s *RecentStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	kept := file.Entries[:0]
	for _, e := range file.Entries {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(file.Entries) {
		return nil
	}

	file.Entries = kept
	return s.save(file)
}

// Clear removes all entries.
func (s *RecentStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(RecentFile{Entries: []recent.Entry{}})
}

// load reads the file from disk.
// Returns empty RecentFile if file doesn't exist.
func (s *RecentStore) load() (RecentFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return RecentFile{}, nil
		}
		return RecentFile{}, fmt.Errorf("read recent file: %w", err)
	}

	if len(data) == 0 {
		return RecentFile{}, nil
	}

	var file RecentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return RecentFile{}, fmt.Errorf("decode recent file: %w", err)
	}

	return file, nil
}

// save writes the file to disk atomically.
func (s *RecentStore) save(file RecentFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
