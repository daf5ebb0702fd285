package iojson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type term struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, term{Key: "Menu/Bold", Text: "<b>Play</b> & win"})
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"key\": \"Menu/Bold\",\n  \"text\": \"<b>Play</b> & win\"\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_EncodeError(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"bad": make(chan int)})
	require.Error(t, err)

	assert.Empty(t, out.String())

	var payload map[string]string
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &payload))
	assert.Equal(t, "unable to encode output", payload["message"])
	assert.Contains(t, payload["error"], "chan")
}

func TestWriteLine(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, WriteLine(&out, term{Key: "A", Text: "x"}))
	require.NoError(t, WriteLine(&out, term{Key: "B", Text: "<y>"}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, []string{
		`{"key":"A","text":"x"}`,
		`{"key":"B","text":"<y>"}`,
	}, lines)
}
