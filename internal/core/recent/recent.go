// Package recent defines the recently opened documents list.
package recent

import (
	"context"
	"errors"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when a path is not in the list.
var ErrNotFound = errors.New("not in recent documents")

// Entry records a document the user opened and the language column they
// were working in.
type Entry struct {
	Path     string    `json:"path"`
	Language int       `json:"language"`
	OpenedAt time.Time `json:"opened_at"`
}

// Store persists recent entries, newest first. Paths are unique.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, path string) (Entry, error)
	// Touch records entry as the most recent, replacing any entry with the
	// same path and pruning the list to maxEntries.
	Touch(ctx context.Context, entry Entry, maxEntries int) error
	Remove(ctx context.Context, path string) error
	Clear(ctx context.Context) error
}

// NewEntry builds an entry for path with an absolute, cleaned path.
func NewEntry(path string, lang int, now time.Time) Entry {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return Entry{Path: filepath.Clean(path), Language: lang, OpenedAt: now.UTC()}
}
