package orderedjson

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Marshal encodes v with two-space indentation. See Encode.
func Marshal(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes v to w with two-space indentation. Members go on their own lines,
// keys are followed by ": ", empty containers print as {} or [] and
// non-ASCII text is written literally. No trailing newline is added.
func Encode(w io.Writer, v *Value) error {
	bw := bufio.NewWriter(w)
	e := encoder{w: bw, indent: "  "}
	e.value(v, 0)
	return bw.Flush()
}

type encoder struct {
	w      *bufio.Writer
	indent string
}

func (e *encoder) newline(depth int) {
	_ = e.w.WriteByte('\n')
	for range depth {
		_, _ = e.w.WriteString(e.indent)
	}
}

func (e *encoder) value(v *Value, depth int) {
	switch v.Kind() {
	case Null:
		_, _ = e.w.WriteString("null")
	case Bool:
		if v.boolean {
			_, _ = e.w.WriteString("true")
		} else {
			_, _ = e.w.WriteString("false")
		}
	case Number:
		_, _ = e.w.WriteString(v.num.String())
	case String:
		writeString(e.w, v.str)
	case Array:
		if len(v.items) == 0 {
			_, _ = e.w.WriteString("[]")
			return
		}
		_ = e.w.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				_ = e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			e.value(item, depth+1)
		}
		e.newline(depth)
		_ = e.w.WriteByte(']')
	case Object:
		if len(v.members) == 0 {
			_, _ = e.w.WriteString("{}")
			return
		}
		_ = e.w.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				_ = e.w.WriteByte(',')
			}
			e.newline(depth + 1)
			writeString(e.w, m.Key)
			_, _ = e.w.WriteString(": ")
			e.value(m.Value, depth+1)
		}
		e.newline(depth)
		_ = e.w.WriteByte('}')
	}
}

// writeString escapes only what JSON requires: quote, backslash and control
// characters. Everything else, including non-ASCII and HTML characters, is
// written as-is.
func writeString(w *bufio.Writer, s string) {
	_ = w.WriteByte('"')
	start := 0
	for i := 0; i < len(s); {
		b := s[i]
		if b >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				_, _ = w.WriteString(s[start:i])
				_, _ = w.WriteString(`�`)
				i += size
				start = i
				continue
			}
			i += size
			continue
		}
		if b >= 0x20 && b != '"' && b != '\\' {
			i++
			continue
		}

		_, _ = w.WriteString(s[start:i])
		switch b {
		case '"':
			_, _ = w.WriteString(`\"`)
		case '\\':
			_, _ = w.WriteString(`\\`)
		case '\n':
			_, _ = w.WriteString(`\n`)
		case '\r':
			_, _ = w.WriteString(`\r`)
		case '\t':
			_, _ = w.WriteString(`\t`)
		case '\b':
			_, _ = w.WriteString(`\b`)
		case '\f':
			_, _ = w.WriteString(`\f`)
		default:
			_, _ = w.WriteString(`\u00`)
			_ = w.WriteByte(hexDigits[b>>4])
			_ = w.WriteByte(hexDigits[b&0xf])
		}
		i++
		start = i
	}
	_, _ = w.WriteString(s[start:])
	_ = w.WriteByte('"')
}

// Quote returns s as a JSON string literal using the same escaping as Encode.
func Quote(s string) string {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	writeString(bw, s)
	_ = bw.Flush()
	return sb.String()
}
