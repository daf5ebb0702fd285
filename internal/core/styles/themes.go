package styles

import (
	"slices"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Light bool // rendered on a light terminal background

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// palette builds a Palette from hex colors in field order.
func palette(light bool, hex ...string) Palette {
	c := func(i int) lipgloss.Color { return lipgloss.Color(hex[i]) }
	return Palette{
		Light:      light,
		Primary:    c(0),
		Secondary:  c(1),
		Foreground: c(2),
		Muted:      c(3),
		Background: c(4),
		Surface:    c(5),
		Success:    c(6),
		Warning:    c(7),
		Error:      c(8),
	}
}

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	//                            primary    secondary  fg         muted      bg         surface    success    warning    error
	"tokyo-night":     palette(false, "#7aa2f7", "#7dcfff", "#c0caf5", "#565f89", "#1a1b26", "#3b4261", "#9ece6a", "#e0af68", "#f7768e"),
	"gruvbox":         palette(false, "#83a598", "#8ec07c", "#ebdbb2", "#665c54", "#282828", "#3c3836", "#b8bb26", "#fabd2f", "#fb4934"),
	"catppuccin":      palette(false, "#89b4fa", "#94e2d5", "#cdd6f4", "#6c7086", "#1e1e2e", "#313244", "#a6e3a1", "#f9e2af", "#f38ba8"),
	"solarized-light": palette(true, "#268bd2", "#2aa198", "#586e75", "#93a1a1", "#fdf6e3", "#eee8d5", "#859900", "#b58900", "#dc322f"),
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

func hexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	hex := string(c)
	return &hex
}

// GlamourStyle returns the markdown style used by `i2edit info`, starting
// from glamour's light or dark style and recolored with the active palette.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if CurrentPalette.Light {
		cfg = glamourstyles.LightStyleConfig
	}

	fg := hexPtr(ColorForeground)
	primary := hexPtr(ColorPrimary)
	secondary := hexPtr(ColorSecondary)
	muted := hexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg
	cfg.Table.Color = fg

	// the document path heading
	cfg.H1.Color = hexPtr(ColorBackground)
	cfg.H1.BackgroundColor = primary
	for _, h := range []*glamouransi.StyleBlock{&cfg.Heading, &cfg.H2, &cfg.H3} {
		h.Color = primary
	}

	// term keys and language codes are rendered as inline code
	cfg.Code.Color = secondary
	cfg.Item.Color = fg
	cfg.HorizontalRule.Color = muted

	return cfg
}
