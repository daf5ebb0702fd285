package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/i2edit/internal/core/styles"
)

type dialogResult int

const (
	dialogPending dialogResult = iota
	dialogAccepted
	dialogRejected
)

// dialog is the yes/no question drawn over the editor before a destructive
// action. Which action it guards is recorded in kind.
type dialog struct {
	kind   confirmKind
	title  string
	body   string
	accept string
	reject string

	acceptFocused bool
}

func newDialog(kind confirmKind, title, body string) dialog {
	d := dialog{
		kind:          kind,
		title:         title,
		body:          body,
		accept:        title,
		reject:        "Cancel",
		acceptFocused: true,
	}
	if kind == confirmQuit {
		// enter keeps the unsaved work
		d.reject = "Keep editing"
		d.acceptFocused = false
	}
	return d
}

// handleKey applies one key press and reports whether the dialog was
// answered.
func (d *dialog) handleKey(key string) dialogResult {
	switch key {
	case "left", "right", "h", "l", "tab", "shift+tab":
		d.acceptFocused = !d.acceptFocused
	case "y", "Y":
		return dialogAccepted
	case "n", "N", "esc":
		return dialogRejected
	case "enter":
		if d.acceptFocused {
			return dialogAccepted
		}
		return dialogRejected
	}
	return dialogPending
}

func (d dialog) button(label string, focused bool) string {
	if focused {
		return styles.ModalButtonSelectedStyle.Render(label)
	}
	return styles.ModalButtonStyle.Render(label)
}

// render draws the dialog centered in a width x height area. Whatever was
// on screen is replaced.
func (d dialog) render(width, height int) string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		d.button(d.accept, d.acceptFocused),
		"  ",
		d.button(d.reject, !d.acceptFocused),
	)

	box := styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(d.title),
		"",
		lipgloss.NewStyle().Width(min(60, max(20, width-10))).Render(d.body),
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		styles.ModalHelpStyle.Render("y/n answer  ←/→ switch  enter choose  esc cancel"),
	))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
