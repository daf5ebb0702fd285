package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/textcol"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case stateConfirming:
			return m.updateConfirm(msg)
		case statePrompting:
			return m.updatePrompt(msg)
		case stateEditing:
			return m.updateEditing(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateEditing:
		m.editor, cmd = m.editor.Update(msg)
	case statePrompting:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.requestQuit()
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}
	if key.Matches(msg, m.keys.Open) {
		return m, m.openPrompt(promptOpen, "Open: ", m.session.Path())
	}
	if !m.session.Loaded() {
		m.setStatus(status.NoDocument, nil)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()
	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.SaveAs):
		return m, m.openPrompt(promptSaveAs, "Save as: ", m.session.Path())
	case key.Matches(msg, m.keys.Find):
		return m, m.openPrompt(promptFind, "Find: ", m.query)
	case key.Matches(msg, m.keys.FindNext):
		m.findNext()
		return m, nil
	case key.Matches(msg, m.keys.Replace):
		if m.cursorOrdinal() == 0 {
			m.setError(m.catalog.T(status.NothingSelected, nil))
			return m, nil
		}
		return m, m.openPrompt(promptReplaceQuery, "Replace: ", m.query)
	case key.Matches(msg, m.keys.ReplaceAll):
		return m, m.openPrompt(promptReplaceAllQuery, "Replace all: ", m.query)
	case key.Matches(msg, m.keys.PrevLang):
		m.switchLanguage(-1)
		return m, nil
	case key.Matches(msg, m.keys.NextLang):
		m.switchLanguage(1)
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.openPrompt(promptExport, "Export to: ", m.defaultColumnPath())
	case key.Matches(msg, m.keys.Import):
		return m, m.openPrompt(promptImport, "Import from: ", m.defaultColumnPath())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.requestQuit()
	case key.Matches(msg, m.keys.Save):
		m.commitEdit()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		m.session.Deselect()
		m.setStatus(status.Cancelled, nil)
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closePrompt()
		m.setStatus(status.Cancelled, nil)
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		kind := m.prompt
		m.closePrompt()
		return m.submitPrompt(kind, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.dialog.handleKey(msg.String()) {
	case dialogAccepted:
		return m.resolveConfirm(true)
	case dialogRejected:
		return m.resolveConfirm(false)
	}
	return m, nil
}

func (m Model) submitPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	switch kind {
	case promptFind:
		if value == "" {
			m.setError(m.catalog.T(status.EnterSearchTerm, nil))
			return m, nil
		}
		m.query = value
		m.findNext()
	case promptReplaceQuery, promptReplaceAllQuery:
		if value == "" {
			m.setError(m.catalog.T(status.EnterSearchTerm, nil))
			return m, nil
		}
		m.query = value
		next := promptReplaceWith
		if kind == promptReplaceAllQuery {
			next = promptReplaceAllWith
		}
		return m, m.openPrompt(next, "With: ", m.replacement)
	case promptReplaceWith:
		m.replacement = value
		return m, m.replaceInRow()
	case promptReplaceAllWith:
		m.replacement = value
		m.askReplaceAll()
	case promptExport:
		if value == "" {
			m.setStatus(status.Cancelled, nil)
			return m, nil
		}
		m.exportColumn(value)
	case promptImport:
		if value == "" {
			m.setStatus(status.Cancelled, nil)
			return m, nil
		}
		m.planImport(value)
	case promptOpen:
		if value == "" {
			m.setStatus(status.Cancelled, nil)
			return m, nil
		}
		m.openPath = value
		if m.session.Dirty() {
			m.openConfirm(confirmOpen, "Open", m.catalog.T(status.UnsavedOpen, nil))
			return m, nil
		}
		m.openDocument()
	case promptSaveAs:
		if value == "" {
			m.setStatus(status.Cancelled, nil)
			return m, nil
		}
		m.saveAs(value)
	}
	return m, nil
}

func (m Model) resolveConfirm(ok bool) (tea.Model, tea.Cmd) {
	kind := m.dialog.kind
	m.dialog = dialog{}
	m.state = m.resume
	m.resume = stateBrowsing
	m.layout()

	if !ok {
		m.pendingImport = nil
		m.openPath = ""
		m.setStatus(status.Cancelled, nil)
		return m, nil
	}

	switch kind {
	case confirmQuit:
		return m, tea.Quit
	case confirmReplaceAll:
		n := m.session.ReplaceAll(m.query, m.replacement)
		m.refreshRows()
		m.setStatusN(status.ReplacedAll, n, nil)
	case confirmImport:
		m.applyImport()
	case confirmOpen:
		m.openDocument()
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, label, value string) tea.Cmd {
	m.prompt = kind
	m.state = statePrompting
	m.input.Prompt = label
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.table.Blur()
	m.layout()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.input.Blur()
	m.input.SetValue("")
	m.state = stateBrowsing
	m.table.Focus()
	m.layout()
}

func (m *Model) openConfirm(kind confirmKind, title, message string) {
	m.resume = m.state
	m.state = stateConfirming
	m.dialog = newDialog(kind, title, message)
	m.layout()
}

// unsaved reports whether quitting would lose work: document changes not
// yet written, or editor text not yet committed.
func (m Model) unsaved() bool {
	if m.session.Dirty() {
		return true
	}
	return m.state == stateEditing && m.editor.Value() != m.editorOriginal
}

func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	if !m.unsaved() {
		return m, tea.Quit
	}
	m.openConfirm(confirmQuit, "Quit", m.catalog.T(status.UnsavedChanges, nil))
	return m, nil
}

// startEdit opens the row under the cursor in the editor.
func (m *Model) startEdit() tea.Cmd {
	ordinal := m.cursorOrdinal()
	if ordinal == 0 {
		m.setError(m.catalog.T(status.NothingSelected, nil))
		return nil
	}
	text, err := m.session.Select(ordinal)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	return m.openEditor(text)
}

// openEditor shows text in the editor. Text the editor cannot hold exactly
// is refused with a status error and the selection is dropped.
func (m *Model) openEditor(text string) tea.Cmd {
	shown, et, ok := toEditor(text)
	if !ok {
		m.session.Deselect()
		m.setError(m.catalog.T(status.NotEditable, nil))
		return nil
	}
	m.editorMap = et
	m.editor.SetValue(shown)
	m.editorOriginal = m.editor.Value()
	m.state = stateEditing
	m.table.Blur()
	m.layout()
	return m.editor.Focus()
}

func (m *Model) closeEditor() {
	m.editor.Blur()
	m.editor.Reset()
	m.editorOriginal = ""
	m.editorMap = editorText{}
	m.state = stateBrowsing
	m.table.Focus()
	m.layout()
}

// commitEdit writes the editor text to the selected term. Edited text is
// mapped back to the term's own line breaks; untouched text leaves the
// buffer as it is.
func (m *Model) commitEdit() {
	row, ok := m.session.Selected()
	if !ok {
		m.closeEditor()
		m.setError(m.catalog.T(status.NothingSelected, nil))
		return
	}

	if value := m.editor.Value(); value != m.editorOriginal {
		_ = m.session.SetBuffer(m.editorMap.restore(value))
	}

	if m.session.Buffer() == m.session.Document().TextAt(row.Position, m.session.Language()) {
		m.closeEditor()
		m.session.Deselect()
		return
	}

	row, err := m.session.Commit()
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.closeEditor()
	m.session.Deselect()
	m.refreshRows()
	m.setStatus(status.TermUpdated, map[string]any{"Term": row.Key})
}

func (m *Model) save() {
	if err := m.session.Save(""); err != nil {
		m.log.Error().Err(err).Str("path", m.session.Path()).Msg("save failed")
		m.setError(m.catalog.T(status.SaveFailed, map[string]any{"Error": err.Error()}))
		return
	}
	m.setStatus(status.FileSaved, map[string]any{"Path": m.session.Path()})
}

// saveAs writes the document to path, which becomes the session path.
func (m *Model) saveAs(path string) {
	if err := m.session.Save(path); err != nil {
		m.log.Error().Err(err).Str("path", path).Msg("save as failed")
		m.setError(m.catalog.T(status.SaveFailed, map[string]any{"Error": err.Error()}))
		return
	}
	m.touchRecent()
	m.setStatus(status.FileSaved, map[string]any{"Path": m.session.Path()})
}

// openDocument replaces the session document with the file at openPath. A
// file that fails to load leaves the session empty.
func (m *Model) openDocument() {
	path := m.openPath
	m.openPath = ""

	err := m.session.Open(path)
	m.refreshRows()
	m.table.SetCursor(0)
	if err != nil {
		m.setError(m.catalog.T(status.LoadFailed, map[string]any{"Error": err.Error()}))
		return
	}
	m.touchRecent()
	m.initialStatus()
}

func (m *Model) findNext() {
	if m.query == "" {
		m.setError(m.catalog.T(status.EnterSearchTerm, nil))
		return
	}
	row, ok := m.session.FindNext(m.query, m.cursorOrdinal())
	if !ok {
		m.setError(m.catalog.T(status.NotFound, map[string]any{"Query": m.query}))
		return
	}
	m.table.SetCursor(row.Ordinal - 1)
	m.setStatus(status.Found, map[string]any{"Query": m.query})
}

// replaceInRow replaces the first match in the row under the cursor and
// opens the result in the editor for review. Nothing is committed.
func (m *Model) replaceInRow() tea.Cmd {
	ordinal := m.cursorOrdinal()
	if _, err := m.session.Select(ordinal); err != nil {
		m.setError(m.catalog.T(status.NothingSelected, nil))
		return nil
	}
	if m.session.ReplaceInEditor(m.query, m.replacement) == 0 {
		m.session.Deselect()
		m.setError(m.catalog.T(status.NotFoundInEditor, nil))
		return nil
	}
	cmd := m.openEditor(m.session.Buffer())
	if m.state != stateEditing {
		return nil
	}
	m.setStatus(status.ReplacedInEditor, nil)
	return cmd
}

func (m *Model) askReplaceAll() {
	occurrences, _ := m.session.CountMatches(m.query)
	if occurrences == 0 {
		m.setError(m.catalog.T(status.NotFound, map[string]any{"Query": m.query}))
		return
	}
	msg := m.catalog.T(status.ReplaceAllConfirm, map[string]any{
		"Query":       m.query,
		"Replacement": m.replacement,
	})
	m.openConfirm(confirmReplaceAll, "Replace all", msg)
}

func (m *Model) switchLanguage(delta int) {
	count := m.session.Document().LanguageCount()
	if count == 0 {
		return
	}
	next := ((m.session.Language()+delta)%count + count) % count
	if err := m.session.SetLanguage(next); err != nil {
		m.setError(err.Error())
		return
	}
	m.refreshRows()
	m.setStatus(status.DisplayingLanguage, map[string]any{"Language": m.languageTitle(next)})
}

func (m *Model) exportColumn(path string) {
	values := m.session.ExportColumn()
	if err := textcol.WriteFile(path, values, m.opts.LineEnding); err != nil {
		m.log.Error().Err(err).Str("path", path).Msg("export failed")
		m.setError(err.Error())
		return
	}
	m.log.Info().Str("path", path).Int("lines", len(values)).Msg("column exported")
	m.setStatusN(status.Exported, len(values), map[string]any{"Path": path})
}

func (m *Model) planImport(path string) {
	values, err := textcol.ReadFile(path)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.pendingImport = values
	m.importPath = path

	plan := m.session.PlanImport(values)
	if !plan.Mismatch() {
		m.applyImport()
		return
	}
	msg := m.catalog.T(status.LineCountMismatch, map[string]any{"Lines": plan.Lines, "Rows": plan.Rows})
	m.openConfirm(confirmImport, "Import", msg)
}

func (m *Model) applyImport() {
	values := m.pendingImport
	m.pendingImport = nil

	n, err := m.session.ImportColumn(values)
	m.refreshRows()
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatusN(status.Imported, n, map[string]any{"Path": m.importPath})
}
