package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsIncreasing(t, names)
}

func TestSetThemeByName(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	require.True(t, SetThemeByName("gruvbox"))
	assert.Equal(t, themes["gruvbox"].Primary, ColorPrimary)

	assert.False(t, SetThemeByName("nope"))
	assert.Equal(t, themes["gruvbox"].Primary, ColorPrimary, "unknown theme keeps current palette")
}

func TestGlamourStyleUsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.H2.Color)
	assert.Equal(t, string(ColorPrimary), *cfg.H2.Color)
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, string(ColorForeground), *cfg.Document.Color)
}

func TestGlamourStyleLightTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	for _, name := range ThemeNames() {
		require.True(t, SetThemeByName(name))
		cfg := GlamourStyle()
		require.NotNil(t, cfg.H1.BackgroundColor, name)
		assert.Equal(t, string(ColorPrimary), *cfg.H1.BackgroundColor, name)
		assert.Equal(t, name == "solarized-light", CurrentPalette.Light, name)
	}
}
