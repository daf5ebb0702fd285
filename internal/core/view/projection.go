// Package view derives the single-language table shown to the user from a
// document. Rows are keyed by their position in the terms array, so repeated
// term keys never shadow one another.
package view

import (
	"strings"

	"github.com/hay-kot/i2edit/internal/core/i2doc"
)

// Row is the display projection of one term for the active language.
type Row struct {
	Ordinal   int    `json:"ordinal"`  // 1-based, in document order
	Position  int    `json:"position"` // index into the terms array
	Key       string `json:"key"`
	HasKey    bool   `json:"-"`
	Preview   string `json:"preview"`
	Missing   bool   `json:"missing,omitempty"`   // no slot for this language
	Duplicate bool   `json:"duplicate,omitempty"` // key also used by another term
}

// Projection is a disposable, single-language view of a document.
type Projection struct {
	lang       int
	rows       []Row
	byPosition map[int]int
	byKey      map[string][]int
}

// Preview folds text into a single line for the table: carriage returns and
// newlines become spaces and surrounding whitespace is trimmed.
func Preview(text string) string {
	return strings.TrimSpace(strings.NewReplacer("\n", " ", "\r", " ").Replace(text))
}

// Rebuild produces one row per term in document order. It is always a full
// rebuild; a language change invalidates every preview.
func Rebuild(doc *i2doc.Document, lang int) *Projection {
	p := &Projection{
		lang:       lang,
		byPosition: make(map[int]int),
		byKey:      make(map[string][]int),
	}
	if doc == nil {
		return p
	}

	n := doc.Len()
	p.rows = make([]Row, n)
	for pos := range n {
		key, hasKey := doc.Key(pos)
		p.rows[pos] = Row{
			Ordinal:  pos + 1,
			Position: pos,
			Key:      key,
			HasKey:   hasKey,
			Preview:  Preview(doc.TextAt(pos, lang)),
			Missing:  !doc.HasText(pos, lang),
		}
		p.byPosition[pos] = pos
		if hasKey {
			p.byKey[key] = append(p.byKey[key], pos)
		}
	}

	for _, positions := range p.byKey {
		if len(positions) < 2 {
			continue
		}
		for _, pos := range positions {
			p.rows[p.byPosition[pos]].Duplicate = true
		}
	}

	return p
}

// Language is the language index the projection was built for.
func (p *Projection) Language() int { return p.lang }

// Len returns the number of rows.
func (p *Projection) Len() int { return len(p.rows) }

// Rows returns the rows in view order. The slice must not be modified.
func (p *Projection) Rows() []Row { return p.rows }

// Row returns the row with the given 1-based ordinal.
func (p *Projection) Row(ordinal int) (Row, bool) {
	if ordinal < 1 || ordinal > len(p.rows) {
		return Row{}, false
	}
	return p.rows[ordinal-1], true
}

// RowAt returns the row for a terms array position.
func (p *Projection) RowAt(pos int) (Row, bool) {
	idx, ok := p.byPosition[pos]
	if !ok {
		return Row{}, false
	}
	return p.rows[idx], true
}

// RowsForKey returns every row whose term key equals key.
func (p *Projection) RowsForKey(key string) []Row {
	positions := p.byKey[key]
	out := make([]Row, 0, len(positions))
	for _, pos := range positions {
		out = append(out, p.rows[p.byPosition[pos]])
	}
	return out
}

// Duplicates returns the keys used by more than one term and their positions.
func (p *Projection) Duplicates() map[string][]int {
	out := make(map[string][]int)
	for key, positions := range p.byKey {
		if len(positions) > 1 {
			out[key] = append([]int(nil), positions...)
		}
	}
	return out
}

// RefreshRow updates the preview of the row at pos after a single edit. No
// other row and no ordinal is touched.
func (p *Projection) RefreshRow(pos int, text string) bool {
	idx, ok := p.byPosition[pos]
	if !ok {
		return false
	}
	p.rows[idx].Preview = Preview(text)
	p.rows[idx].Missing = false
	return true
}
