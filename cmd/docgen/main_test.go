package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/i2edit/internal/commands"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")

	require.NoError(t, generate(commands.NewApp(&commands.Flags{}), dir))

	md, err := os.ReadFile(filepath.Join(dir, "cli-reference.md"))
	require.NoError(t, err)
	for _, name := range []string{"info", "replace", "export", "import", "recent"} {
		assert.Contains(t, string(md), name)
	}

	assert.FileExists(t, filepath.Join(dir, "i2edit.1"))
}
