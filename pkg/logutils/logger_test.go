package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "i2edit.log")

	l, closer, err := New("info", file)
	require.NoError(t, err)
	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("first")
	closer()

	l, closer, err = New("info", file)
	require.NoError(t, err)
	l.Warn().Msg("second")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "file is appended, debug is filtered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "first", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "time")
}

func TestNew_BadLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	assert.NotNil(t, closer)
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "i2edit.log")

	require.NoError(t, rotate(file, 8), "missing file is not an error")

	require.NoError(t, os.WriteFile(file, []byte("small"), 0o644))
	require.NoError(t, rotate(file, 8))
	assert.FileExists(t, file)
	assert.NoFileExists(t, file+".1")

	require.NoError(t, os.WriteFile(file, []byte("much too large"), 0o644))
	require.NoError(t, rotate(file, 8))
	assert.NoFileExists(t, file)

	old, err := os.ReadFile(file + ".1")
	require.NoError(t, err)
	assert.Equal(t, "much too large", string(old))

	f, err := openFile(file, 8)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, file)
}
