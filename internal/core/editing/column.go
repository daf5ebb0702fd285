package editing

import (
	"github.com/hay-kot/i2edit/internal/core/textcol"
)

// ExportColumn returns the full text of every row, in view order, for the
// active language. Use textcol.Write to serialize it.
func (s *Session) ExportColumn() []string {
	if s.doc == nil {
		return nil
	}

	rows := s.view.Rows()
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = s.doc.TextAt(row.Position, s.lang)
	}
	return out
}

// ExportLines returns ExportColumn encoded in the canonical quoted format.
func (s *Session) ExportLines() []string {
	values := s.ExportColumn()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = textcol.EncodeLine(v)
	}
	return out
}

// ImportPlan describes how a set of imported values lines up with the rows.
type ImportPlan struct {
	Lines int
	Rows  int
}

// Mismatch reports whether the value and row counts differ. Callers warn the
// user and ask before importing only the overlapping prefix.
func (p ImportPlan) Mismatch() bool { return p.Lines != p.Rows }

// Applicable is the number of values that will be applied.
func (p ImportPlan) Applicable() int { return min(p.Lines, p.Rows) }

// PlanImport compares decoded values against the current rows.
func (s *Session) PlanImport(values []string) ImportPlan {
	return ImportPlan{Lines: len(values), Rows: s.view.Len()}
}

// ImportColumn commits values pairwise against the rows in view order. Only
// the overlapping prefix is applied. The open term's buffer is reloaded
// afterwards. It returns the number of values applied.
func (s *Session) ImportColumn(values []string) (int, error) {
	if s.doc == nil {
		return 0, ErrNoDocument
	}

	rows := s.view.Rows()
	applied := 0
	for i := range min(len(values), len(rows)) {
		if _, err := s.commitAt(rows[i].Position, values[i]); err != nil {
			return applied, err
		}
		applied++
	}

	s.reloadBuffer()
	s.log.Info().Int("applied", applied).Int("values", len(values)).Int("rows", len(rows)).Msg("column imported")
	return applied, nil
}
