// Package tui implements the interactive term editor.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/i2edit/internal/core/editing"
	"github.com/hay-kot/i2edit/internal/core/i2doc"
	"github.com/hay-kot/i2edit/internal/core/logging"
	"github.com/hay-kot/i2edit/internal/core/recent"
	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/styles"
	"github.com/hay-kot/i2edit/internal/core/textcol"
	"github.com/hay-kot/i2edit/internal/core/view"
	"github.com/hay-kot/i2edit/pkg/tmpl"
)

// UIState is the interaction mode of the editor.
type UIState int

const (
	stateBrowsing UIState = iota
	stateEditing
	statePrompting
	stateConfirming
)

type promptKind int

const (
	promptFind promptKind = iota
	promptReplaceQuery
	promptReplaceWith
	promptReplaceAllQuery
	promptReplaceAllWith
	promptExport
	promptImport
	promptOpen
	promptSaveAs
)

type confirmKind int

const (
	confirmQuit confirmKind = iota
	confirmReplaceAll
	confirmImport
	confirmOpen
)

const (
	defaultExportFileName = "{{ .Stem }}.{{ .Column }}.txt"

	defaultWidth  = 100
	defaultHeight = 30
	editorHeight  = 6
	ordinalWidth  = 5
)

// Options configures a Model.
type Options struct {
	Catalog      *status.Catalog
	LineEnding   textcol.LineEnding
	PreviewWidth int

	// ExportFileName is the template for the path suggested by the export
	// and import prompts.
	ExportFileName string

	// Recent, when set, records documents opened or saved under a new name.
	Recent    recent.Store
	RecentMax int
}

// Model is the bubbletea model of the editor. It owns no document state of
// its own; every change goes through the session.
type Model struct {
	session *editing.Session
	catalog *status.Catalog
	opts    Options
	log     zerolog.Logger

	keys   keyMap
	help   help.Model
	table  table.Model
	editor textarea.Model
	input  textinput.Model

	state  UIState
	resume UIState // state to return to when a confirmation is cancelled
	prompt promptKind
	dialog dialog

	query       string
	replacement string

	editorOriginal string
	editorMap      editorText
	pendingImport  []string
	importPath     string
	openPath       string

	status    string
	statusErr bool

	width  int
	height int
}

// New creates a Model over an open session.
func New(session *editing.Session, opts Options) Model {
	if opts.Catalog == nil {
		opts.Catalog = status.New("en")
	}
	if !opts.LineEnding.Valid() {
		opts.LineEnding = textcol.LF
	}
	if opts.PreviewWidth <= 0 {
		opts.PreviewWidth = 60
	}
	if opts.ExportFileName == "" {
		opts.ExportFileName = defaultExportFileName
	}

	t := table.New(table.WithFocused(true))
	ts := table.DefaultStyles()
	ts.Header = styles.TableHeaderStyle.Padding(0, 1)
	ts.Selected = styles.TableSelectedStyle
	t.SetStyles(ts)

	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.SetHeight(editorHeight)

	in := textinput.New()
	in.PromptStyle = styles.PromptStyle

	m := Model{
		session: session,
		catalog: opts.Catalog,
		opts:    opts,
		log:     logging.Component("tui"),
		keys:    defaultKeyMap(),
		help:    help.New(),
		table:   t,
		editor:  ed,
		input:   in,
	}

	m.layout()
	m.refreshRows()
	m.initialStatus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) initialStatus() {
	if !m.session.Loaded() {
		m.setStatus(status.NoDocument, nil)
		return
	}
	if m.session.View().Len() == 0 {
		m.setError(m.catalog.T(status.NoTerms, nil))
		return
	}
	if dups := len(m.session.View().Duplicates()); dups > 0 {
		m.setError(m.catalog.N(status.DuplicateKeys, dups, nil))
		return
	}
	m.setStatus(status.FileLoaded, map[string]any{"Path": m.session.Path()})
}

// refreshRows rebuilds the table rows from the session projection. The
// cursor stays on the same ordinal when it still exists.
func (m *Model) refreshRows() {
	rows := m.session.View().Rows()
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = table.Row{strconv.Itoa(row.Ordinal), keyLabel(row), previewLabel(row)}
	}
	m.table.SetRows(out)
	if c := m.table.Cursor(); c >= len(out) && len(out) > 0 {
		m.table.SetCursor(len(out) - 1)
	}
}

func keyLabel(row view.Row) string {
	label := row.Key
	if !row.HasKey {
		label = "(no key)"
	}
	if row.Duplicate {
		label += " *"
	}
	return label
}

func previewLabel(row view.Row) string {
	if row.Missing {
		return "(missing)"
	}
	return row.Preview
}

// layout sizes the table and inputs for the current window and state.
func (m *Model) layout() {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	keyWidth := min(40, max(12, w/3))
	textWidth := max(10, w-ordinalWidth-keyWidth-6)
	if m.width <= 0 {
		textWidth = m.opts.PreviewWidth
	}
	m.table.SetColumns([]table.Column{
		{Title: "#", Width: ordinalWidth},
		{Title: "Term", Width: keyWidth},
		{Title: "Text", Width: textWidth},
	})
	m.table.SetWidth(w)

	m.editor.SetWidth(max(10, w-4))
	m.input.Width = max(10, w-20)
	m.help.Width = w

	chrome := 4 // header, spacer, status, help
	if m.help.ShowAll {
		chrome += 3
	}
	if m.editorVisible() {
		chrome += editorHeight + 3
	}
	if m.state == statePrompting {
		chrome++
	}
	m.table.SetHeight(max(3, h-chrome))
}

func (m Model) editorVisible() bool {
	return m.state == stateEditing || (m.state == stateConfirming && m.resume == stateEditing)
}

// cursorOrdinal is the 1-based ordinal under the table cursor, or 0 when the
// table is empty.
func (m Model) cursorOrdinal() int {
	if len(m.table.Rows()) == 0 {
		return 0
	}
	return m.table.Cursor() + 1
}

func (m *Model) setStatus(id string, data map[string]any) {
	m.status = m.catalog.T(id, data)
	m.statusErr = false
}

func (m *Model) setStatusN(id string, count int, data map[string]any) {
	m.status = m.catalog.N(id, count, data)
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

// languageTitle returns the display title of column lang.
func (m Model) languageTitle(lang int) string {
	for _, l := range m.session.Document().Languages() {
		if l.Index == lang {
			return l.Title()
		}
	}
	return i2doc.Label(lang)
}

// defaultColumnPath suggests a text file for the active column, next to the
// document unless the template says otherwise.
func (m Model) defaultColumnPath() string {
	lang := m.session.Language()
	var code, name string
	for _, l := range m.session.Document().Languages() {
		if l.Index == lang {
			code, name = l.Code, l.Name
		}
	}

	f := tmpl.NewColumnFile(m.session.Path(), lang, code, name)
	path, err := tmpl.ColumnPath(m.opts.ExportFileName, f)
	if err != nil {
		m.log.Warn().Err(err).Str("template", m.opts.ExportFileName).Msg("bad export file name template")
		path, _ = tmpl.ColumnPath(defaultExportFileName, f)
	}
	return path
}

// touchRecent records the session document in the recent list.
func (m Model) touchRecent() {
	if m.opts.Recent == nil || m.session.Path() == "" {
		return
	}
	entry := recent.NewEntry(m.session.Path(), m.session.Language(), time.Now())
	if err := m.opts.Recent.Touch(context.Background(), entry, m.opts.RecentMax); err != nil {
		m.log.Warn().Err(err).Str("path", entry.Path).Msg("failed to update recent documents")
	}
}

// Status returns the current status line text.
func (m Model) Status() string { return m.status }
