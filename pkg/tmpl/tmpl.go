// Package tmpl renders the small text templates used in configuration, such
// as the suggested file name for an exported language column.
package tmpl

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"default": func(def, s string) string {
		if s == "" {
			return def
		}
		return s
	},
	// slug keeps a value safe for use in a file name.
	"slug": func(s string) string {
		return strings.Map(func(r rune) rune {
			switch r {
			case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
				return '-'
			}
			return r
		}, s)
	},
}

// Parse compiles tmpl without executing it.
func Parse(tmpl string) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - lower, upper: change case
//   - default: fall back to the first argument when the value is empty
//   - slug: replace characters that are unsafe in file names with '-'
func Render(tmpl string, data any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}

// ColumnFile is the data available to export file name templates.
type ColumnFile struct {
	Dir    string // directory of the document
	Stem   string // document file name without extension
	Number int    // 1-based language column
	Code   string // language code, may be empty
	Name   string // language name, may be empty
	Column string // Code, or Number when there is no code
}

// NewColumnFile describes the column lang (zero-based) of the document at
// path.
func NewColumnFile(path string, lang int, code, name string) ColumnFile {
	base := filepath.Base(path)
	column := code
	if column == "" {
		column = strconv.Itoa(lang + 1)
	}
	return ColumnFile{
		Dir:    filepath.Dir(path),
		Stem:   strings.TrimSuffix(base, filepath.Ext(base)),
		Number: lang + 1,
		Code:   code,
		Name:   name,
		Column: column,
	}
}

// ColumnPath renders the file name template for f and joins the result to
// the document directory unless it is already absolute.
func ColumnPath(tmpl string, f ColumnFile) (string, error) {
	name, err := Render(tmpl, f)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("template %q rendered an empty file name", tmpl)
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(f.Dir, name), nil
}
