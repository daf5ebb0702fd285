// Package config handles configuration loading and validation for i2edit.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/i2edit/internal/core/i2doc"
	"github.com/hay-kot/i2edit/internal/core/styles"
	"github.com/hay-kot/i2edit/internal/core/textcol"
)

// Config holds the application configuration.
type Config struct {
	Locale  string        `yaml:"locale"`
	Theme   string        `yaml:"theme"`
	Probes  []i2doc.Probe `yaml:"probes"`
	Export  ExportConfig  `yaml:"export"`
	Recent  RecentConfig  `yaml:"recent"`
	TUI     TUIConfig     `yaml:"tui"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// ExportConfig controls text column export.
type ExportConfig struct {
	LineEnding textcol.LineEnding `yaml:"line_ending"`
	// FileName is a template for the file suggested by the editor's export
	// and import prompts. See tmpl.ColumnFile for the available fields.
	FileName string `yaml:"file_name"`
}

// DefaultExportFileName writes I2Languages.fr.txt next to I2Languages.json.
const DefaultExportFileName = "{{ .Stem }}.{{ .Column }}.txt"

// RecentConfig controls the recent documents list.
type RecentConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// TUIConfig holds interactive editor settings.
type TUIConfig struct {
	PreviewWidth int `yaml:"preview_width"` // width of the preview column, in cells
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Locale: "en",
		Theme:  styles.DefaultTheme,
		Probes: append([]i2doc.Probe(nil), i2doc.DefaultProbes...),
		Export: ExportConfig{
			LineEnding: textcol.LF,
			FileName:   DefaultExportFileName,
		},
		Recent: RecentConfig{
			MaxEntries: 20,
		},
		TUI: TUIConfig{
			PreviewWidth: 60,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if len(c.Probes) == 0 {
		c.Probes = defaults.Probes
	}
	if c.Export.LineEnding == "" {
		c.Export.LineEnding = defaults.Export.LineEnding
	}
	if c.Export.FileName == "" {
		c.Export.FileName = defaults.Export.FileName
	}
	if c.Recent.MaxEntries == 0 {
		c.Recent.MaxEntries = defaults.Recent.MaxEntries
	}
	if c.TUI.PreviewWidth == 0 {
		c.TUI.PreviewWidth = defaults.TUI.PreviewWidth
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !c.Export.LineEnding.Valid() {
		return fmt.Errorf("export.line_ending must be %q or %q, got %q", textcol.LF, textcol.CRLF, c.Export.LineEnding)
	}

	if c.Recent.MaxEntries < 1 {
		return fmt.Errorf("recent.max_entries must be at least 1")
	}

	if c.TUI.PreviewWidth < 10 {
		return fmt.Errorf("tui.preview_width must be at least 10")
	}

	for i, p := range c.Probes {
		if p.Term == "" {
			return fmt.Errorf("probes[%d]: term is required", i)
		}
	}

	return nil
}

// RecentFile returns the path to the recent documents JSON file.
func (c *Config) RecentFile() string {
	return filepath.Join(c.DataDir, "recent.json")
}
