package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/i2edit/internal/core/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{m.headerView(), "", m.table.View()}

	if m.editorVisible() {
		sections = append(sections, m.editorView())
	}
	if m.state == statePrompting {
		sections = append(sections, m.input.View())
	}
	sections = append(sections, m.statusView(), m.helpView())

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.state == stateConfirming {
		w, h := m.width, m.height
		if w <= 0 {
			w = defaultWidth
		}
		if h <= 0 {
			h = defaultHeight
		}
		return m.dialog.render(w, h)
	}
	return body
}

func (m Model) headerView() string {
	title := styles.TitleStyle.Render("i2edit")
	if !m.session.Loaded() {
		return title
	}

	parts := []string{
		title,
		styles.TextMutedStyle.Render(filepath.Base(m.session.Path())),
		styles.LanguageStyle.Render(m.languageTitle(m.session.Language())),
		styles.TextMutedStyle.Render(fmt.Sprintf("%d terms", m.session.View().Len())),
	}
	if m.session.Dirty() {
		parts = append(parts, styles.DirtyStyle.Render("[modified]"))
	}

	out := parts[0]
	for _, p := range parts[1:] {
		out += styles.TextMutedStyle.Render(" · ") + p
	}
	return out
}

func (m Model) editorView() string {
	title := "Editing"
	if row, ok := m.session.Selected(); ok {
		title = fmt.Sprintf("Editing #%d %s", row.Ordinal, keyLabel(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.EditorTitleStyle.Render(title),
		styles.EditorFocusedStyle.Render(m.editor.View()),
	)
}

func (m Model) statusView() string {
	if m.statusErr {
		return styles.StatusErrorStyle.Render(m.status)
	}
	return styles.StatusBarStyle.Render(m.status)
}

func (m Model) helpView() string {
	if m.state == stateEditing {
		return m.help.View(m.keys.editing())
	}
	return m.help.View(m.keys)
}
