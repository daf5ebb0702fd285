package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/text/language"

	"github.com/hay-kot/i2edit/internal/core/styles"
	"github.com/hay-kot/i2edit/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including locale and theme names and file accessibility. The configPath
// argument specifies the config file location to validate (empty string
// skips the config file check). This calls Validate() first for basic
// structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("locale", c.Locale, isLocale),
		criterio.Run("theme", c.Theme, isTheme),
		criterio.Run("export.file_name", c.Export.FileName, isFileNameTemplate),
		c.validateProbes(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	seen := make(map[string]bool, len(c.Probes))
	for i, p := range c.Probes {
		key := p.Term + "=" + p.Value
		if seen[key] {
			warnings = append(warnings, ValidationWarning{
				Category: "Probes",
				Item:     fmt.Sprintf("probes[%d]", i),
				Message:  fmt.Sprintf("probe %s is listed more than once", key),
			})
		}
		seen[key] = true
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isLocale(locale string) error {
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return nil
}

func isTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func isFileNameTemplate(t string) error {
	if t == "" {
		return nil
	}
	if _, err := tmpl.ColumnPath(t, tmpl.NewColumnFile("I2Languages.json", 0, "en", "English")); err != nil {
		return err
	}
	return nil
}

// validateProbes rejects probe terms with surrounding whitespace; term keys
// are compared exactly.
func (c *Config) validateProbes() error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range c.Probes {
		if strings.TrimSpace(p.Term) != p.Term {
			errs = errs.Append(fmt.Sprintf("probes[%d].term", i), fmt.Errorf("term %q has surrounding whitespace", p.Term))
		}
	}
	return errs.ToError()
}
