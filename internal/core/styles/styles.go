// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Shared styles, rebuilt by SetTheme.
var (
	TextPrimaryStyle lipgloss.Style
	TextMutedStyle   lipgloss.Style
	TextSuccessStyle lipgloss.Style
	TextWarningStyle lipgloss.Style
	TextErrorStyle   lipgloss.Style

	TitleStyle    lipgloss.Style
	LanguageStyle lipgloss.Style
	DirtyStyle    lipgloss.Style

	TableHeaderStyle   lipgloss.Style
	TableSelectedStyle lipgloss.Style

	EditorStyle        lipgloss.Style
	EditorFocusedStyle lipgloss.Style
	EditorTitleStyle   lipgloss.Style

	StatusBarStyle   lipgloss.Style
	StatusErrorStyle lipgloss.Style

	PromptStyle lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	LanguageStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	DirtyStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorSurface).
		BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface).
		Bold(true)

	EditorStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
	EditorFocusedStyle = EditorStyle.
		BorderForeground(ColorPrimary)
	EditorTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	StatusErrorStyle = StatusBarStyle.
		Foreground(ColorError)

	PromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
}

// SetThemeByName activates a built-in theme. It reports false and leaves the
// current theme in place when name is unknown.
func SetThemeByName(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		return false
	}
	SetTheme(p)
	return true
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
