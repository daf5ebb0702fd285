package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// editorText maps a term's text to the form shown in the textarea and back.
// The textarea turns every '\r' into a line break, expands tabs and drops
// other control characters, so CRLF breaks are shown as '\n' and restored
// afterwards. Text the textarea would otherwise alter is not editable.
type editorText struct {
	breaks []string // line terminators of the source text, in order
}

// toEditor returns the editor form of text and the mapping that restores
// it. ok is false when the editor cannot represent text exactly.
func toEditor(text string) (shown string, et editorText, ok bool) {
	if !utf8.ValidString(text) {
		return "", editorText{}, false
	}

	var b strings.Builder
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\r':
			if !strings.HasPrefix(text[i+1:], "\n") {
				return "", editorText{}, false
			}
			et.breaks = append(et.breaks, "\r\n")
			b.WriteByte('\n')
			size = 2
		case r == '\n':
			et.breaks = append(et.breaks, "\n")
			b.WriteByte('\n')
		case r == '\t', r == utf8.RuneError, unicode.IsControl(r):
			return "", editorText{}, false
		default:
			b.WriteRune(r)
		}
		i += size
	}
	return b.String(), et, true
}

// restore converts edited editor text back. The i-th line break gets the
// terminator of the i-th break of the source text; breaks past the source's
// count reuse its last terminator.
func (et editorText) restore(value string) string {
	if len(et.breaks) == 0 || !strings.Contains(value, "\n") {
		return value
	}

	lines := strings.Split(value, "\n")
	var b strings.Builder
	for i, line := range lines {
		b.WriteString(line)
		if i == len(lines)-1 {
			break
		}
		b.WriteString(et.breaks[min(i, len(et.breaks)-1)])
	}
	return b.String()
}
