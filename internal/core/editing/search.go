package editing

import (
	"regexp"

	"github.com/hay-kot/i2edit/internal/core/view"
)

// matcher compiles a literal, case-insensitive pattern for query.
func matcher(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

// FindNext searches the full text of every term in the active language for
// query, case-insensitively, starting at the row after afterOrdinal and
// wrapping around. The first hit in scan order wins. An afterOrdinal outside
// 1..N starts the scan at row 1.
func (s *Session) FindNext(query string, afterOrdinal int) (view.Row, bool) {
	n := s.view.Len()
	if s.doc == nil || query == "" || n == 0 {
		return view.Row{}, false
	}

	start := afterOrdinal
	if start < 0 || start >= n {
		start = 0
	}

	re := matcher(query)
	rows := s.view.Rows()
	for i := range n {
		row := rows[(start+i)%n]
		if re.MatchString(s.doc.TextAt(row.Position, s.lang)) {
			return row, true
		}
	}
	return view.Row{}, false
}

// FindAll returns every row whose text matches query, in view order.
func (s *Session) FindAll(query string) []view.Row {
	if s.doc == nil || query == "" {
		return nil
	}

	re := matcher(query)
	var out []view.Row
	for _, row := range s.view.Rows() {
		if re.MatchString(s.doc.TextAt(row.Position, s.lang)) {
			out = append(out, row)
		}
	}
	return out
}

// ReplaceInEditor replaces the first case-insensitive occurrence of query in
// the working buffer. The document is not touched until Commit. It returns
// the number of replacements made: 0 or 1.
func (s *Session) ReplaceInEditor(query, replacement string) int {
	if s.editing == nil || query == "" {
		return 0
	}

	loc := matcher(query).FindStringIndex(s.editing.buffer)
	if loc == nil {
		return 0
	}

	buf := s.editing.buffer
	s.editing.buffer = buf[:loc[0]] + replacement + buf[loc[1]:]
	return 1
}

// ReplaceAll replaces every case-insensitive occurrence of query in every
// term of the active language and commits the results immediately. The
// replacement is literal. It returns the total number of occurrences
// replaced. There is no undo; callers confirm with the user first.
func (s *Session) ReplaceAll(query, replacement string) int {
	if s.doc == nil || query == "" {
		return 0
	}

	re := matcher(query)
	total := 0
	for _, row := range s.view.Rows() {
		old := s.doc.TextAt(row.Position, s.lang)
		hits := len(re.FindAllStringIndex(old, -1))
		if hits == 0 {
			continue
		}
		if _, err := s.commitAt(row.Position, re.ReplaceAllLiteralString(old, replacement)); err != nil {
			s.log.Error().Err(err).Int("position", row.Position).Msg("replace all: commit failed")
			continue
		}
		total += hits
	}

	s.reloadBuffer()
	s.log.Info().Str("query", query).Int("count", total).Msg("replace all")
	return total
}

// CountMatches returns the number of case-insensitive occurrences of query
// in the active language and the number of rows containing at least one.
func (s *Session) CountMatches(query string) (occurrences, rows int) {
	if s.doc == nil || query == "" {
		return 0, 0
	}

	re := matcher(query)
	for _, row := range s.view.Rows() {
		if n := len(re.FindAllStringIndex(s.doc.TextAt(row.Position, s.lang), -1)); n > 0 {
			occurrences += n
			rows++
		}
	}
	return occurrences, rows
}
