package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const englishColumn = "\"Cancel\"\n\"He said \"\"hi\"\"\"\n\"Line one\nLine two\r\n\"\n\"RUN\"\n"

func confirmWith(answer bool, asked *string) ConfirmFunc {
	return func(title, _ string) (bool, error) {
		if asked != nil {
			*asked = title
		}
		return answer, nil
	}
}

func TestSet(t *testing.T) {
	e := newTestEnv(t)
	root := NewSetCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "set", e.doc, "Cancel", "Stop"))

	doc := e.load(t, e.doc)
	assert.Equal(t, "Stop", doc.TextAt(0, english))
	assert.Equal(t, "Annuler", doc.TextAt(0, 0))
	assert.Contains(t, e.msgs(), "Updated term: Cancel")
	assert.Contains(t, e.msgs(), "File saved successfully")

	entries, err := e.flags.Recent.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.doc, entries[0].Path)
}

func TestSet_Output(t *testing.T) {
	e := newTestEnv(t)
	root := NewSetCmd(e.flags).Register(e.root())
	out := filepath.Join(e.dir, "out.json")

	require.NoError(t, e.run(root, "set", "--lang", "fr", "-o", out, e.doc, "RUN", "COURIR"))

	assert.Equal(t, "COURIR", e.load(t, out).TextAt(3, 0))
	assert.Equal(t, "LANCER", e.load(t, e.doc).TextAt(3, 0), "source is untouched")
}

func TestSet_Stdin(t *testing.T) {
	e := newTestEnv(t)
	cmd := NewSetCmd(e.flags)
	cmd.stdin = strings.NewReader("first\nsecond\r\n")
	root := cmd.Register(e.root())

	require.NoError(t, e.run(root, "set", e.doc, "Menu/Quote", "-"))

	assert.Equal(t, "first\nsecond", e.load(t, e.doc).TextAt(1, english))
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown term", []string{"set", "DOC", "Nope", "x"}, "term not found"},
		{"unknown language", []string{"set", "--lang", "9", "DOC", "Cancel", "x"}, "9"},
		{"too few args", []string{"set", "DOC", "Cancel"}, "usage:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			root := NewSetCmd(e.flags).Register(e.root())
			for i, a := range tt.args {
				if a == "DOC" {
					tt.args[i] = e.doc
				}
			}

			err := e.run(root, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		confirm bool
		want    string
		msg     string
	}{
		{
			name: "yes flag",
			args: []string{"--yes"},
			want: "Row one\nRow two\r\n",
			msg:  "Replaced 2 occurrences in total.",
		},
		{
			name:    "confirmed",
			confirm: true,
			want:    "Row one\nRow two\r\n",
			msg:     "Replaced 2 occurrences in total.",
		},
		{
			name:    "declined",
			confirm: false,
			want:    "Line one\nLine two\r\n",
			msg:     "Cancelled.",
		},
		{
			name: "dry run",
			args: []string{"--dry-run"},
			want: "Line one\nLine two\r\n",
			msg:  "2 occurrence(s) in 1 term(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			cmd := NewReplaceCmd(e.flags)
			var asked string
			cmd.confirm = confirmWith(tt.confirm, &asked)
			root := cmd.Register(e.root())

			args := append(append([]string{"replace"}, tt.args...), e.doc, "LINE", "Row")
			require.NoError(t, e.run(root, args...))

			assert.Equal(t, tt.want, e.load(t, e.doc).TextAt(2, english))
			assert.Contains(t, e.msgs(), tt.msg)
			if len(tt.args) == 0 {
				assert.Equal(t, "Replace all occurrences of 'LINE' with 'Row'? This cannot be undone.", asked)
			} else {
				assert.Empty(t, asked)
			}
		})
	}
}

func TestReplace_NotFound(t *testing.T) {
	e := newTestEnv(t)
	cmd := NewReplaceCmd(e.flags)
	cmd.confirm = func(string, string) (bool, error) {
		t.Fatal("confirm should not be called")
		return false, nil
	}
	root := cmd.Register(e.root())

	require.NoError(t, e.run(root, "replace", e.doc, "zzz", "y"))
	assert.Contains(t, e.msgs(), "No more occurrences of 'zzz' found.")
}

func TestReplace_ReplacementIsLiteral(t *testing.T) {
	e := newTestEnv(t)
	root := NewReplaceCmd(e.flags).Register(e.root())

	require.NoError(t, e.run(root, "replace", "--yes", e.doc, "run", "$0 ${1}"))
	assert.Equal(t, "$0 ${1}", e.load(t, e.doc).TextAt(3, english))
}

func TestExport(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default lf", nil, englishColumn},
		{"crlf", []string{"--line-ending", "crlf"}, "\"Cancel\"\r\n\"He said \"\"hi\"\"\"\r\n\"Line one\nLine two\r\n\"\r\n\"RUN\"\r\n"},
		{"third column", []string{"--lang", "zh-CN"}, "\"取消\"\n\"他说\"\"你好\"\"\"\n\"\"\n\"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			root := NewExportCmd(e.flags).Register(e.root())

			args := append(append([]string{"export"}, tt.args...), e.doc)
			require.NoError(t, e.run(root, args...))
			assert.Equal(t, tt.want, e.out())
		})
	}
}

func TestExport_File(t *testing.T) {
	e := newTestEnv(t)
	root := NewExportCmd(e.flags).Register(e.root())
	out := filepath.Join(e.dir, "en.txt")

	require.NoError(t, e.run(root, "export", "-o", out, e.doc))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, englishColumn, string(data))
	assert.Empty(t, e.out())
	assert.Contains(t, e.msgs(), "Exported 4 lines to "+out)
}

func TestExport_InvalidLineEnding(t *testing.T) {
	e := newTestEnv(t)
	root := NewExportCmd(e.flags).Register(e.root())

	err := e.run(root, "export", "--line-ending", "cr", e.doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid line ending "cr"`)
}

func writeText(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "column.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImport(t *testing.T) {
	e := newTestEnv(t)
	cmd := NewImportCmd(e.flags)
	cmd.confirm = func(string, string) (bool, error) {
		t.Fatal("confirm should not be called when counts match")
		return false, nil
	}
	root := cmd.Register(e.root())
	src := writeText(t, e.dir, englishColumn)

	require.NoError(t, e.run(root, "import", "--lang", "fr", e.doc, src))

	doc := e.load(t, e.doc)
	assert.Equal(t, "Cancel", doc.TextAt(0, 0))
	assert.Equal(t, `He said "hi"`, doc.TextAt(1, 0))
	assert.Equal(t, "Line one\nLine two\r\n", doc.TextAt(2, 0))
	assert.Equal(t, "RUN", doc.TextAt(3, 0))
	assert.Contains(t, e.msgs(), "Imported 4 lines from "+src)
}

func TestImport_Mismatch(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		confirm bool
		want    string
		msg     string
	}{
		{"declined", nil, false, "Annuler", "Cancelled."},
		{"confirmed", nil, true, "Abbrechen", "Imported 2 lines"},
		{"forced", []string{"--force"}, false, "Abbrechen", "does not match the number of terms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			cmd := NewImportCmd(e.flags)
			asked := false
			cmd.confirm = func(title, desc string) (bool, error) {
				asked = true
				assert.Contains(t, title, "(2)")
				assert.Contains(t, title, "(4)")
				assert.Equal(t, "2 record(s) will be imported", desc)
				return tt.confirm, nil
			}
			root := cmd.Register(e.root())
			src := writeText(t, e.dir, "\"Abbrechen\"\n\"Er sagte \"\"hallo\"\"\"\n")

			args := append(append([]string{"import", "--lang", "1"}, tt.args...), e.doc, src)
			require.NoError(t, e.run(root, args...))

			doc := e.load(t, e.doc)
			assert.Equal(t, tt.want, doc.TextAt(0, 0))
			assert.Equal(t, "LANCER", doc.TextAt(3, 0), "rows past the imported prefix are untouched")
			assert.Contains(t, e.msgs(), tt.msg)
			assert.Equal(t, len(tt.args) == 0, asked)
		})
	}
}

func TestImport_Stdin(t *testing.T) {
	e := newTestEnv(t)
	cmd := NewImportCmd(e.flags)
	f, err := os.Open(writeText(t, e.dir, "Annuler\nIl a dit\nx\ny\n"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	cmd.stdin = f
	root := cmd.Register(e.root())

	require.NoError(t, e.run(root, "import", e.doc))

	doc := e.load(t, e.doc)
	assert.Equal(t, "Annuler", doc.TextAt(0, english))
	assert.Equal(t, "y", doc.TextAt(3, english))
	assert.Contains(t, e.msgs(), "from stdin")
}

func TestImport_MissingFile(t *testing.T) {
	e := newTestEnv(t)
	root := NewImportCmd(e.flags).Register(e.root())

	err := e.run(root, "import", e.doc, filepath.Join(e.dir, "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open text file")
}
