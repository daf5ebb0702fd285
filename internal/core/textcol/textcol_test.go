package textcol

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLine(t *testing.T) {
	assert.Equal(t, `"He said ""hi"""`, EncodeLine(`He said "hi"`))
	assert.Equal(t, `""`, EncodeLine(""))
	assert.Equal(t, `""""`, EncodeLine(`"`))
}

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "quoted", in: `"He said ""hi"""`, want: `He said "hi"`},
		{name: "quoted with crlf", in: "\"value\"\r\n", want: "value"},
		{name: "empty quoted", in: `""`, want: ""},
		{name: "legacy bare line", in: "plain text\n", want: "plain text"},
		{name: "legacy with inner quotes", in: `She said "no" twice`, want: `She said "no" twice`},
		{name: "lone quote", in: `"`, want: ""},
		{name: "lone quote with crlf", in: "\"\r\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeLine(tt.in))
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"a", `b "c"`}, LF))
	assert.Equal(t, "\"a\"\n\"b \"\"c\"\"\"\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, []string{"a", "b"}, CRLF))
	assert.Equal(t, "\"a\"\r\n\"b\"\r\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	values := []string{
		"Cancel",
		`He said "hi"`,
		"",
		`"`,
		`""`,
		"line one\nline two",
		"\nleading newline",
		"trailing newline\n",
		"\n",
		"windows\r\nbreaks\r\n",
		`ends with quote then newline"` + "\n" + `"`,
		"取消 ✓",
		`"quoted"`,
	}

	for _, le := range []LineEnding{LF, CRLF} {
		t.Run(string(le), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, values, le))

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, values, got)
		})
	}
}

func TestSplit_LegacyFormat(t *testing.T) {
	input := "first\nsecond \"quoted\" word\n\"unterminated start\nlast\n"

	got := Split(input)
	assert.Equal(t, []string{
		"first",
		`second "quoted" word`,
		`"unterminated start`,
		"last",
	}, got)

	// Two bare lines merge when the first opens a quote and a later one
	// closes it, so the record count shrinks by one.
	got = Split("\"start of one\nend of two\"\nthird\n")
	assert.Equal(t, []string{"start of one\nend of two", "third"}, got)
}

func TestSplit_LegacyQuoteEdges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lone quote line",
			input: "before\n\"\nafter\n",
			want:  []string{"before", "", "after"},
		},
		{
			name:  "lone quote closes at a later quoted end",
			input: "\"\nnext\"\n",
			want:  []string{"\nnext"},
		},
		{
			name:  "merge spans blank lines",
			input: "\"a\n\nb\"\n",
			want:  []string{"a\n\nb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input))
		})
	}
}

func TestSplit_MixedFormats(t *testing.T) {
	input := strings.Join([]string{
		`"quoted"`,
		`bare`,
		`"multi`,
		`line"`,
		"",
		`"bad "quote" inside`,
	}, "\n")

	got := Split(input)
	assert.Equal(t, []string{"quoted", "bare", "multi\nline", "", `"bad "quote" inside`}, got)
}

func TestSplit_Empty(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Equal(t, []string{""}, Split("\n"))
	assert.Equal(t, []string{"a", ""}, Split("a\n\n"))
}

func TestLineEnding_Valid(t *testing.T) {
	assert.True(t, LF.Valid())
	assert.True(t, CRLF.Valid())
	assert.False(t, LineEnding("cr").Valid())
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column.txt")
	values := []string{"Cancel", "Line one\nLine two", `He said "hi"`}

	require.NoError(t, WriteFile(path, values, CRLF))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open text file")
}
