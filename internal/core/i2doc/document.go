// Package i2doc models an I2 Languages resource document: the JSON tree
// exported by the I2 Localization plugin, its terms array and the parallel
// per-language translation strings of each term.
//
// The whole tree is kept, including keys this package never reads, so that a
// saved document differs from the loaded one only where terms were edited.
package i2doc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hay-kot/i2edit/pkg/orderedjson"
)

// Schema names the location the terms array was found at.
type Schema string

const (
	SchemaSource Schema = "mSource.mTerms.Array"
	SchemaRoot   Schema = "mTerms.Array"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a loaded resource file. Terms are addressed by their position
// in the terms array; keys are not guaranteed to be unique.
type Document struct {
	root   *orderedjson.Value
	terms  *orderedjson.Value
	schema Schema
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	return Parse(data)
}

// Parse builds a Document from raw JSON.
func Parse(data []byte) (*Document, error) {
	root, err := orderedjson.Unmarshal(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	terms, schema, err := locateTerms(root)
	if err != nil {
		return nil, err
	}

	return &Document{root: root, terms: terms, schema: schema}, nil
}

// locateTerms resolves the terms array. When mSource carries an mTerms
// member that branch is authoritative and the root mTerms is not consulted.
func locateTerms(root *orderedjson.Value) (*orderedjson.Value, Schema, error) {
	if root.Kind() != orderedjson.Object {
		return nil, "", fmt.Errorf("%w: document root is a %s", ErrSchema, root.Kind())
	}

	var (
		arr    *orderedjson.Value
		schema Schema
	)

	if src := root.Get("mSource"); src.Kind() == orderedjson.Object && src.Has("mTerms") {
		arr, schema = src.Path("mTerms", "Array"), SchemaSource
	} else if mt := root.Get("mTerms"); mt.Kind() == orderedjson.Object {
		arr, schema = mt.Get("Array"), SchemaRoot
	}

	if arr.Kind() != orderedjson.Array {
		return nil, "", ErrSchema
	}

	for i, term := range arr.Items() {
		if term.Kind() != orderedjson.Object {
			return nil, "", fmt.Errorf("%w: term %d is a %s, not an object", ErrSchema, i, term.Kind())
		}
	}

	return arr, schema, nil
}

// Schema reports where the terms array was found.
func (d *Document) Schema() Schema { return d.schema }

// Len returns the number of terms.
func (d *Document) Len() int { return d.terms.Len() }

// Key returns the term key at pos. ok is false when the term has no string
// Term member or pos is out of range.
func (d *Document) Key(pos int) (key string, ok bool) {
	return d.terms.Index(pos).Get("Term").Str()
}

// Lookup returns every position whose term key equals key, in document order.
func (d *Document) Lookup(key string) []int {
	var out []int
	for i := range d.Len() {
		if k, ok := d.Key(i); ok && k == key {
			out = append(out, i)
		}
	}
	return out
}

// LanguageCount is the length of the first term's translations. Other terms
// are assumed to match; ragged arrays are tolerated by the accessors.
func (d *Document) LanguageCount() int {
	if d.Len() == 0 {
		return 0
	}
	return translations(d.terms.Index(0), false).Len()
}

// TextAt returns the translation of the term at pos for lang. Missing terms,
// missing slots and non-string slots all read as "".
func (d *Document) TextAt(pos, lang int) string {
	s, _ := translations(d.terms.Index(pos), false).Index(lang).Str()
	return s
}

// HasText reports whether the term at pos has a string slot for lang.
func (d *Document) HasText(pos, lang int) bool {
	_, ok := translations(d.terms.Index(pos), false).Index(lang).Str()
	return ok
}

// Texts returns every translation of the term at pos.
func (d *Document) Texts(pos int) []string {
	arr := translations(d.terms.Index(pos), false)
	out := make([]string, arr.Len())
	for i, v := range arr.Items() {
		out[i], _ = v.Str()
	}
	return out
}

// SetTextAt stores text in the term at pos for lang. The translations array
// is padded with empty strings when lang is beyond its current length.
func (d *Document) SetTextAt(pos, lang int, text string) error {
	term := d.terms.Index(pos)
	if term == nil {
		return fmt.Errorf("position %d: %w", pos, ErrTermNotFound)
	}
	if lang < 0 {
		return fmt.Errorf("language index %d: %w", lang, ErrUnknownLanguage)
	}

	arr := translations(term, true)
	for arr.Len() <= lang {
		arr.Append(orderedjson.NewString(""))
	}
	arr.Index(lang).SetStr(text)
	return nil
}

// Translation returns the text of the first term with key for lang, or ""
// when the key or slot does not exist.
func (d *Document) Translation(key string, lang int) string {
	positions := d.Lookup(key)
	if len(positions) == 0 {
		return ""
	}
	return d.TextAt(positions[0], lang)
}

// SetTranslation stores text in the first term with key.
func (d *Document) SetTranslation(key string, lang int, text string) error {
	positions := d.Lookup(key)
	if len(positions) == 0 {
		return fmt.Errorf("%q: %w", key, ErrTermNotFound)
	}
	return d.SetTextAt(positions[0], lang, text)
}

// translations returns the Languages.Array node of term. With create set,
// missing or mistyped nodes are replaced so the result is always an array.
func translations(term *orderedjson.Value, create bool) *orderedjson.Value {
	if term.Kind() != orderedjson.Object {
		return nil
	}

	langs := term.Get("Languages")
	if langs.Kind() != orderedjson.Object {
		if !create {
			return nil
		}
		langs = orderedjson.NewObject()
		term.Set("Languages", langs)
	}

	arr := langs.Get("Array")
	if arr.Kind() != orderedjson.Array {
		if !create {
			return nil
		}
		arr = orderedjson.NewArray()
		langs.Set("Array", arr)
	}
	return arr
}

// Encode writes the full document tree to w.
func (d *Document) Encode(w io.Writer) error {
	return orderedjson.Encode(w, d.root)
}

// Save writes the document to path. The file is written to a temporary file
// in the same directory and renamed into place.
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".i2edit-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrIO, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := d.Encode(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename into %s: %w", ErrIO, path, err)
	}
	return nil
}
