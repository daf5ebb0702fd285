package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/i2edit/internal/core/i2doc"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Locale = "fr-CA"
	cfg.Theme = "gruvbox"

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_CollectsFieldErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Locale = "not_a_locale!"
	cfg.Theme = "solarized-neon"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)

	fields := []string{fieldErrs[0].Field, fieldErrs[1].Field}
	assert.ElementsMatch(t, []string{"locale", "theme"}, fields)
}

func TestValidateDeep_ThemeErrorListsThemes(t *testing.T) {
	cfg := validConfig(t)
	cfg.Theme = "nope"

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokyo-night")
}

func TestValidateDeep_ProbeWhitespace(t *testing.T) {
	cfg := validConfig(t)
	cfg.Probes = []i2doc.Probe{{Term: "Cancel", Value: "Cancel"}, {Term: " RUN", Value: "RUN"}}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "probes[1].term", fieldErrs[0].Field)
}

func TestValidateDeep_StructuralErrorComesFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Recent.MaxEntries = 0
	cfg.Theme = "nope"

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent.max_entries")
}

func TestValidateDeep_FileAccess(t *testing.T) {
	t.Run("config path is a directory", func(t *testing.T) {
		cfg := validConfig(t)
		err := cfg.ValidateDeep(t.TempDir())

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "config_file", fieldErrs[0].Field)
	})

	t.Run("missing config file is fine", func(t *testing.T) {
		cfg := validConfig(t)
		assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "config.yaml")))
	})

	t.Run("data dir is a file", func(t *testing.T) {
		cfg := validConfig(t)
		file := filepath.Join(t.TempDir(), "data")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		cfg.DataDir = file

		err := cfg.ValidateDeep("")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "data_dir", fieldErrs[0].Field)
	})

	t.Run("data dir not yet created", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.DataDir = filepath.Join(t.TempDir(), "later")
		assert.NoError(t, cfg.ValidateDeep(""))
	})
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Probes = []i2doc.Probe{
		{Term: "Cancel", Value: "Cancel"},
		{Term: "RUN", Value: "RUN"},
		{Term: "Cancel", Value: "Cancel"},
	}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Probes", warnings[0].Category)
	assert.Equal(t, "probes[2]", warnings[0].Item)
}

func TestValidateDeep_ExportFileName(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		wantErr bool
	}{
		{"default", DefaultExportFileName, false},
		{"by name", "{{ slug .Name }}.txt", false},
		{"unknown field", "{{ .Lang }}.txt", true},
		{"unclosed", "{{ .Stem", true},
		{"renders empty", "{{ .Name | lower | printf \"%.0s\" }}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Export.FileName = tt.tmpl

			err := cfg.ValidateDeep("")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, "export.file_name", fieldErrs[0].Field)
		})
	}
}
