package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/config"
	"github.com/hay-kot/i2edit/internal/core/i2doc"
	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/printer"
	"github.com/hay-kot/i2edit/internal/store/jsonfile"
)

const english = 1

type testEnv struct {
	dir   string
	doc   string
	flags *Flags

	stdout   bytes.Buffer
	stderr   bytes.Buffer
	messages bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	src, err := os.ReadFile(filepath.Join("..", "core", "i2doc", "testdata", "source.json"))
	require.NoError(t, err)
	doc := filepath.Join(dir, "source.json")
	require.NoError(t, os.WriteFile(doc, src, 0o644))

	cfg := config.DefaultConfig()
	cfg.DataDir = dir

	return &testEnv{
		dir: dir,
		doc: doc,
		flags: &Flags{
			ConfigPath: filepath.Join(dir, "config.yaml"),
			DataDir:    dir,
			Config:     &cfg,
			Catalog:    status.New("en"),
			Recent:     jsonfile.NewRecentStore(cfg.RecentFile()),
		},
	}
}

// root returns an empty root command wired to the env's buffers. Exit codes
// are returned as errors instead of terminating the test binary.
func (e *testEnv) root() *cli.Command {
	return &cli.Command{
		Name:           appName,
		Writer:         &e.stdout,
		ErrWriter:      &e.stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func (e *testEnv) run(root *cli.Command, args ...string) error {
	e.stdout.Reset()
	e.stderr.Reset()
	e.messages.Reset()
	ctx := printer.WithPrinter(context.Background(), printer.New(&e.messages))
	return root.Run(ctx, append([]string{appName}, args...))
}

func (e *testEnv) out() string { return e.stdout.String() }

func (e *testEnv) msgs() string { return ansi.Strip(e.messages.String()) }

func (e *testEnv) load(t *testing.T, path string) *i2doc.Document {
	t.Helper()
	doc, err := i2doc.Load(path)
	require.NoError(t, err)
	return doc
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}

func TestInfo_JSON(t *testing.T) {
	e := newTestEnv(t)
	root := NewInfoCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "info", "--json", e.doc))

	var info documentInfo
	require.NoError(t, json.Unmarshal(e.stdout.Bytes(), &info))
	assert.Equal(t, e.doc, info.Path)
	assert.Equal(t, 4, info.Terms)
	assert.Equal(t, english, info.DefaultLanguage)
	assert.True(t, info.Detected)
	require.Len(t, info.Languages, 3)
	assert.Equal(t, "French", info.Languages[0].Name)
	assert.Equal(t, 0, info.Languages[1].Missing)
	assert.Equal(t, 1, info.Languages[2].Missing, "RUN has no third slot")
	assert.Equal(t, 1, info.Languages[2].Empty)
	assert.Empty(t, info.Duplicates)
}

func TestInfo_Markdown(t *testing.T) {
	e := newTestEnv(t)
	root := NewInfoCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "info", e.doc))

	out := ansi.Strip(e.out())
	assert.Contains(t, out, "Languages")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "zh-CN")
}

func TestInfo_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"info", "nope.json"}, "load nope.json"},
		{"no args", []string{"info"}, "usage:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			root := NewInfoCmd(e.flags).Register(e.root())
			err := e.run(root, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInfo_MarkdownDuplicates(t *testing.T) {
	info := documentInfo{
		Path:       "a_b.json",
		Terms:      2,
		Detected:   true,
		Duplicates: map[string][]int{"Menu/*": {1, 2}},
	}

	md := info.markdown()
	assert.Contains(t, md, `# a\_b.json`)
	assert.Contains(t, md, "`Menu/*`: rows 1, 2")
}

func TestLs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		keys []string
	}{
		{"all rows", nil, []string{"Cancel", "Menu/Quote", "Menu/Multiline", "RUN"}},
		{"filter children", []string{"--filter", "Menu/*"}, []string{"Menu/Quote", "Menu/Multiline"}},
		{"filter exact", []string{"-f", "RUN"}, []string{"RUN"}},
		{"untranslated", []string{"--lang", "3", "--untranslated"}, []string{"Menu/Multiline", "RUN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			root := NewLsCmd(e.flags).Register(e.root())

			args := append(append([]string{"ls", "--json"}, tt.args...), e.doc)
			require.NoError(t, e.run(root, args...))

			var keys []string
			for _, line := range strings.Split(strings.TrimSpace(e.out()), "\n") {
				var row rowInfo
				require.NoError(t, json.Unmarshal([]byte(line), &row))
				keys = append(keys, row.Key)
			}
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestLs_Table(t *testing.T) {
	e := newTestEnv(t)
	root := NewLsCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "ls", e.doc))

	lines := strings.Split(strings.TrimSpace(e.out()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"#", "TERM", "TEXT"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[2], `He said "hi"`)
	assert.Contains(t, lines[3], "Line one Line two")
}

func TestLs_JSONCarriesFullText(t *testing.T) {
	e := newTestEnv(t)
	root := NewLsCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "ls", "--json", "--filter", "Menu/Multiline", e.doc))

	var row rowInfo
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(e.out())), &row))
	assert.Equal(t, 3, row.Ordinal)
	assert.Equal(t, "Line one\nLine two\r\n", row.Text)
}

func TestLs_InvalidFilter(t *testing.T) {
	e := newTestEnv(t)
	root := NewLsCmd(e.flags).Register(e.root())

	err := e.run(root, "ls", "--filter", "[", e.doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestGet(t *testing.T) {
	e := newTestEnv(t)
	root := NewGetCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "get", e.doc, "Menu/Multiline"))
	assert.Equal(t, "Line one\nLine two\r\n\n", e.out())

	require.NoError(t, e.run(root, "get", "--lang", "fr", e.doc, "Cancel"))
	assert.Equal(t, "Annuler\n", e.out())

	err := e.run(root, "get", e.doc, "Nope")
	require.ErrorIs(t, err, i2doc.ErrTermNotFound)
}

func TestFind(t *testing.T) {
	e := newTestEnv(t)
	root := NewFindCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "find", e.doc, "TWO"))
	fields := strings.Fields(e.out())
	require.GreaterOrEqual(t, len(fields), 2)
	assert.Equal(t, "3", fields[0])
	assert.Equal(t, "Menu/Multiline", fields[1])

	require.NoError(t, e.run(root, "find", "--after", "3", e.doc, "e"))
	assert.True(t, strings.HasPrefix(e.out(), "1"), "wraps to the first row")

	require.NoError(t, e.run(root, "find", "--all", e.doc, "e"))
	assert.Len(t, strings.Split(strings.TrimSpace(e.out()), "\n"), 3)
}

func TestFind_NotFoundExitsOne(t *testing.T) {
	e := newTestEnv(t)
	root := NewFindCmd(e.flags).Register(e.root())

	err := e.run(root, "find", e.doc, "zzz")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, e.msgs(), "No more occurrences of 'zzz' found.")
	assert.Empty(t, e.out())
}
