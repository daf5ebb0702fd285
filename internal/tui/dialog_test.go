package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/i2edit/pkg/tuitest"
)

func TestDialog_Buttons(t *testing.T) {
	tests := []struct {
		kind          confirmKind
		title         string
		accept        string
		reject        string
		acceptFocused bool
	}{
		{confirmReplaceAll, "Replace all", "Replace all", "Cancel", true},
		{confirmImport, "Import", "Import", "Cancel", true},
		{confirmQuit, "Quit", "Quit", "Keep editing", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			d := newDialog(tt.kind, tt.title, "body")
			assert.Equal(t, tt.kind, d.kind)
			assert.Equal(t, tt.accept, d.accept)
			assert.Equal(t, tt.reject, d.reject)
			assert.Equal(t, tt.acceptFocused, d.acceptFocused)
		})
	}
}

func TestDialog_HandleKey(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want dialogResult
	}{
		{"yes", []string{"y"}, dialogAccepted},
		{"no", []string{"N"}, dialogRejected},
		{"escape", []string{"esc"}, dialogRejected},
		{"enter on focused accept", []string{"enter"}, dialogAccepted},
		{"switch then enter", []string{"tab", "enter"}, dialogRejected},
		{"switch twice then enter", []string{"left", "right", "enter"}, dialogAccepted},
		{"other keys wait", []string{"x", "q"}, dialogPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDialog(confirmImport, "Import", "")
			got := dialogPending
			for _, k := range tt.keys {
				got = d.handleKey(k)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialog_Render(t *testing.T) {
	d := newDialog(confirmQuit, "Quit", "There are unsaved changes. Quit anyway?")
	out := tuitest.StripANSI(d.render(80, 24))

	assert.Contains(t, out, "There are unsaved changes. Quit anyway?")
	assert.Contains(t, out, "Quit")
	assert.Contains(t, out, "Keep editing")
}
