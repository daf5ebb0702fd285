package i2doc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/hay-kot/i2edit/pkg/orderedjson"
)

const labelPrefix = "Language "

// Language describes one column of the document.
type Language struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Name  string `json:"name,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Title is the label followed by the language name when one is known.
func (l Language) Title() string {
	if l.Name == "" {
		return l.Label
	}
	return l.Label + " (" + l.Name + ")"
}

// Label returns the user-facing 1-based label for a zero-based index.
func Label(lang int) string {
	return labelPrefix + strconv.Itoa(lang+1)
}

// ParseLabel converts a "Language N" label back to a zero-based index.
func ParseLabel(label string) (int, error) {
	rest, found := strings.CutPrefix(strings.TrimSpace(label), labelPrefix)
	if !found {
		return 0, fmt.Errorf("%q: %w", label, ErrUnknownLanguage)
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q: %w", label, ErrUnknownLanguage)
	}
	return n - 1, nil
}

// Languages lists every column. Names and codes come from the optional
// mLanguages metadata; a code without a name is given its English display
// name.
func (d *Document) Languages() []Language {
	count := d.LanguageCount()
	meta := d.languageMeta()

	out := make([]Language, count)
	for i := range count {
		l := Language{Index: i, Label: Label(i)}
		if entry := meta.Index(i); entry.Kind() == orderedjson.Object {
			l.Name, _ = entry.Get("Name").Str()
			l.Code, _ = entry.Get("Code").Str()
		}
		if l.Name == "" && l.Code != "" {
			if tag, err := language.Parse(l.Code); err == nil {
				l.Name = display.English.Tags().Name(tag)
			}
		}
		out[i] = l
	}
	return out
}

func (d *Document) languageMeta() *orderedjson.Value {
	if arr := d.root.Path("mSource", "mLanguages", "Array"); arr.Kind() == orderedjson.Array {
		return arr
	}
	if arr := d.root.Path("mLanguages", "Array"); arr.Kind() == orderedjson.Array {
		return arr
	}
	return nil
}

// ResolveLanguage maps a user selector to a language index. Accepted forms,
// in order: a 1-based number, a "Language N" label, a language name and a
// BCP 47 code. Codes match exactly first, then by base language.
func (d *Document) ResolveLanguage(sel string) (int, error) {
	sel = strings.TrimSpace(sel)
	count := d.LanguageCount()

	inRange := func(i int) (int, error) {
		if i < 0 || i >= count {
			return 0, fmt.Errorf("%q: document has %d language(s): %w", sel, count, ErrUnknownLanguage)
		}
		return i, nil
	}

	if sel == "" {
		return 0, fmt.Errorf("empty selector: %w", ErrUnknownLanguage)
	}
	if n, err := strconv.Atoi(sel); err == nil {
		return inRange(n - 1)
	}
	if i, err := ParseLabel(sel); err == nil {
		return inRange(i)
	}

	langs := d.Languages()
	for _, l := range langs {
		if l.Name != "" && strings.EqualFold(l.Name, sel) {
			return l.Index, nil
		}
	}

	want, err := language.Parse(sel)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", sel, ErrUnknownLanguage)
	}
	wantBase, _ := want.Base()

	baseMatch := -1
	for _, l := range langs {
		if l.Code == "" {
			continue
		}
		tag, err := language.Parse(l.Code)
		if err != nil {
			continue
		}
		if tag == want {
			return l.Index, nil
		}
		if base, _ := tag.Base(); base == wantBase && baseMatch < 0 {
			baseMatch = l.Index
		}
	}
	if baseMatch >= 0 {
		return baseMatch, nil
	}

	return 0, fmt.Errorf("%q: %w", sel, ErrUnknownLanguage)
}
