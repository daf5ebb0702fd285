// Package editing implements the editing protocol over a document and its
// single-language projection.
//
// A Session is the explicit value a presentation layer holds: the loaded
// document, the active language, the projection built for it and the term
// currently open for editing. Every operation returns plain values so the
// protocol can be driven without any UI.
package editing

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/i2edit/internal/core/i2doc"
	"github.com/hay-kot/i2edit/internal/core/view"
)

var (
	// ErrNoDocument is returned by operations that need a loaded document.
	ErrNoDocument = errors.New("no document loaded")
	// ErrNoSelection is returned when an operation needs an open term.
	ErrNoSelection = errors.New("no term selected")
	// ErrNoPath is returned by Save when neither the session nor the caller
	// provides a destination.
	ErrNoPath = errors.New("no file path")
)

// target is the term open in the editor and its working text.
type target struct {
	position int
	buffer   string
}

// Session is a single editing session. It is not safe for concurrent use.
type Session struct {
	doc     *i2doc.Document
	path    string
	lang    int
	view    *view.Projection
	editing *target
	dirty   bool
	probes  []i2doc.Probe
	log     zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithProbes overrides the probes used to pick the default language.
func WithProbes(probes []i2doc.Probe) Option {
	return func(s *Session) {
		if len(probes) > 0 {
			s.probes = probes
		}
	}
}

// NewSession returns an empty session with no document loaded.
func NewSession(log zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		probes: i2doc.DefaultProbes,
		log:    log,
		view:   view.Rebuild(nil, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads path and selects the detected default language. On any error
// the session is reset to the unloaded state.
func (s *Session) Open(path string) error {
	doc, err := i2doc.Load(path)
	if err != nil {
		s.reset()
		s.log.Warn().Err(err).Str("path", path).Msg("load failed")
		return err
	}
	s.Attach(doc, path)
	return nil
}

// Attach installs an already parsed document.
func (s *Session) Attach(doc *i2doc.Document, path string) {
	s.doc = doc
	s.path = path
	s.dirty = false
	s.editing = nil
	s.lang = doc.DefaultLanguage(s.probes)
	s.view = view.Rebuild(doc, s.lang)

	s.log.Info().
		Str("path", path).
		Str("schema", string(doc.Schema())).
		Int("terms", doc.Len()).
		Int("languages", doc.LanguageCount()).
		Int("language", s.lang).
		Msg("document loaded")
}

// Close drops the document.
func (s *Session) Close() { s.reset() }

func (s *Session) reset() {
	s.doc = nil
	s.path = ""
	s.lang = 0
	s.dirty = false
	s.editing = nil
	s.view = view.Rebuild(nil, 0)
}

// Loaded reports whether a document is open.
func (s *Session) Loaded() bool { return s.doc != nil }

// Document returns the loaded document, or nil.
func (s *Session) Document() *i2doc.Document { return s.doc }

// Path returns the file the document was loaded from or last saved to.
func (s *Session) Path() string { return s.path }

// Dirty reports whether the document changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.dirty }

// Language returns the active language index.
func (s *Session) Language() int { return s.lang }

// View returns the projection for the active language.
func (s *Session) View() *view.Projection { return s.view }

// Save writes the document to path, or to the session path when path is
// empty. A successful save to a new path makes it the session path.
func (s *Session) Save(path string) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if path == "" {
		path = s.path
	}
	if path == "" {
		return ErrNoPath
	}

	if err := s.doc.Save(path); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("save failed")
		return err
	}

	s.path = path
	s.dirty = false
	s.log.Info().Str("path", path).Msg("document saved")
	return nil
}

// SetLanguage switches the active column. The projection is rebuilt and the
// selection is dropped.
func (s *Session) SetLanguage(lang int) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if lang < 0 || lang >= s.doc.LanguageCount() {
		return fmt.Errorf("language index %d of %d: %w", lang, s.doc.LanguageCount(), i2doc.ErrUnknownLanguage)
	}

	s.lang = lang
	s.view = view.Rebuild(s.doc, lang)
	s.Deselect()
	return nil
}

// Select opens the row with the given ordinal for editing and returns its
// full text for the active language. The row preview is lossy; this is not.
func (s *Session) Select(ordinal int) (string, error) {
	if s.doc == nil {
		return "", ErrNoDocument
	}
	row, ok := s.view.Row(ordinal)
	if !ok {
		s.Deselect()
		return "", fmt.Errorf("row %d: %w", ordinal, i2doc.ErrTermNotFound)
	}

	text := s.doc.TextAt(row.Position, s.lang)
	s.editing = &target{position: row.Position, buffer: text}
	return text, nil
}

// SelectKey opens the first row whose key is key.
func (s *Session) SelectKey(key string) (view.Row, string, error) {
	if s.doc == nil {
		return view.Row{}, "", ErrNoDocument
	}
	rows := s.view.RowsForKey(key)
	if len(rows) == 0 {
		s.Deselect()
		return view.Row{}, "", fmt.Errorf("%q: %w", key, i2doc.ErrTermNotFound)
	}
	text, err := s.Select(rows[0].Ordinal)
	return rows[0], text, err
}

// Deselect clears the editing identity. Call it whenever the selection is
// lost so a later commit cannot land on a stale term.
func (s *Session) Deselect() { s.editing = nil }

// Selected returns the row open for editing.
func (s *Session) Selected() (view.Row, bool) {
	if s.editing == nil {
		return view.Row{}, false
	}
	return s.view.RowAt(s.editing.position)
}

// Buffer returns the working text of the open term.
func (s *Session) Buffer() string {
	if s.editing == nil {
		return ""
	}
	return s.editing.buffer
}

// SetBuffer replaces the working text of the open term without committing.
func (s *Session) SetBuffer(text string) error {
	if s.editing == nil {
		return ErrNoSelection
	}
	s.editing.buffer = text
	return nil
}

// Commit writes the working buffer to the document.
func (s *Session) Commit() (view.Row, error) {
	if s.editing == nil {
		return view.Row{}, ErrNoSelection
	}
	return s.commitAt(s.editing.position, s.editing.buffer)
}

// CommitEdit stores text for the row with the given ordinal and refreshes
// that row's preview.
func (s *Session) CommitEdit(ordinal int, text string) (view.Row, error) {
	if s.doc == nil {
		return view.Row{}, ErrNoDocument
	}
	row, ok := s.view.Row(ordinal)
	if !ok {
		return view.Row{}, fmt.Errorf("row %d: %w", ordinal, i2doc.ErrTermNotFound)
	}
	return s.commitAt(row.Position, text)
}

func (s *Session) commitAt(pos int, text string) (view.Row, error) {
	if s.doc == nil {
		return view.Row{}, ErrNoDocument
	}
	if err := s.doc.SetTextAt(pos, s.lang, text); err != nil {
		return view.Row{}, err
	}
	s.view.RefreshRow(pos, text)
	s.dirty = true

	if s.editing != nil && s.editing.position == pos {
		s.editing.buffer = text
	}

	row, _ := s.view.RowAt(pos)
	s.log.Debug().Int("position", pos).Str("term", row.Key).Int("language", s.lang).Msg("term updated")
	return row, nil
}

// reloadBuffer re-reads the open term from the document, discarding any
// uncommitted buffer text.
func (s *Session) reloadBuffer() {
	if s.editing == nil || s.doc == nil {
		return
	}
	s.editing.buffer = s.doc.TextAt(s.editing.position, s.lang)
}
