// Package textcol converts a language column to and from a plain text file.
//
// The canonical format writes one record per term: the text wrapped in double
// quotes with inner quotes doubled ("He said ""hi"""). Newlines inside a value
// are written literally, so a record may span several physical lines; the
// reader joins them back. Unquoted lines from older exports are read as-is.
package textcol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LineEnding terminates each physical record on write.
type LineEnding string

const (
	LF   LineEnding = "lf"
	CRLF LineEnding = "crlf"
)

func (le LineEnding) bytes() string {
	if le == CRLF {
		return "\r\n"
	}
	return "\n"
}

// Valid reports whether le is a supported line ending.
func (le LineEnding) Valid() bool {
	return le == LF || le == CRLF
}

// EncodeLine quotes text for export.
func EncodeLine(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

// DecodeLine interprets a single record. A value that starts and ends with a
// quote is unwrapped and its doubled quotes collapsed; anything else is taken
// literally. Trailing CR/LF characters are stripped first. A lone quote
// counts as both ends and decodes to the empty string.
func DecodeLine(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		if len(line) == 1 {
			return ""
		}
		return strings.ReplaceAll(line[1:len(line)-1], `""`, `"`)
	}
	return line
}

// Write emits one encoded record per value.
func Write(w io.Writer, values []string, le LineEnding) error {
	bw := bufio.NewWriter(w)
	eol := le.bytes()
	for i, v := range values {
		if _, err := bw.WriteString(EncodeLine(v) + eol); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

// Read parses every record in r and returns the decoded values.
func Read(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text column: %w", err)
	}
	return Split(string(data)), nil
}

type quoteState int

const (
	stateLegacy quoteState = iota // not a canonical quoted record
	stateOpen                     // quoted record continues on the next line
	stateClosed                   // complete quoted record
)

// scanQuoted classifies a candidate record that starts with a quote.
func scanQuoted(s string) quoteState {
	if !strings.HasPrefix(s, `"`) {
		return stateLegacy
	}
	for i := 1; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			i++
			continue
		}
		if i == len(s)-1 {
			return stateClosed
		}
		return stateLegacy
	}
	return stateOpen
}

// Split breaks text into decoded records. Physical lines are separated by
// LF; a trailing CR on the line that completes a record is dropped. A quoted
// record that is still open at the end of a line swallows the following
// lines until it closes. If it never closes cleanly the first line is read
// as a legacy line and scanning resumes on the next one.
func Split(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var out []string
	for i := 0; i < len(lines); i++ {
		first := strings.TrimRight(lines[i], "\r")

		if scanQuoted(first) != stateOpen {
			out = append(out, DecodeLine(first))
			continue
		}

		acc := lines[i]
		end := -1
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimRight(lines[j], "\r")
			candidate := acc + "\n" + trimmed

			state := scanQuoted(candidate)
			if state == stateClosed {
				acc = candidate
				end = j
				break
			}
			if state == stateLegacy {
				break
			}
			acc += "\n" + lines[j]
		}

		if end < 0 {
			out = append(out, DecodeLine(first))
			continue
		}

		out = append(out, DecodeLine(acc))
		i = end
	}

	return out
}

// WriteFile creates path and writes values to it.
func WriteFile(path string, values []string, le LineEnding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, values, le); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and decodes every record in path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}
