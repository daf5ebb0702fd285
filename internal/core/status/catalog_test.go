package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestCatalog_English(t *testing.T) {
	c := New("en")

	assert.Equal(t, "File loaded: a.json", c.T(FileLoaded, map[string]any{"Path": "a.json"}))
	assert.Equal(t, "Replaced 1 occurrence in total.", c.N(ReplacedAll, 1, nil))
	assert.Equal(t, "Replaced 5 occurrences in total.", c.N(ReplacedAll, 5, nil))
	assert.Equal(t, "Imported 3 lines from in.txt", c.N(Imported, 3, map[string]any{"Path": "in.txt"}))
}

func TestCatalog_French(t *testing.T) {
	c := New("fr-FR")

	assert.Equal(t, "Annulé.", c.T(Cancelled, nil))
	assert.Equal(t, "5 occurrences remplacées au total.", c.N(ReplacedAll, 5, nil))
}

func TestCatalog_FallsBackToEnglish(t *testing.T) {
	c := New("not a locale")
	assert.Equal(t, language.English, c.Locale())
	assert.Equal(t, "Cancelled.", c.T(Cancelled, nil))

	c = New("de")
	assert.Equal(t, "Cancelled.", c.T(Cancelled, nil))
}

func TestCatalog_UnknownID(t *testing.T) {
	c := New("en")
	assert.Equal(t, "NoSuchMessage", c.T("NoSuchMessage", nil))
	assert.Equal(t, "", c.T("", nil))
}

func TestCatalog_EveryIDHasEnglish(t *testing.T) {
	c := New("en")
	ids := []string{
		NoDocument, FileLoaded, LoadFailed, FileSaved, SaveFailed, NoTerms,
		DisplayingLanguage, TermUpdated, NothingSelected, Found, NotFound,
		EnterSearchTerm, ReplacedInEditor, NotFoundInEditor, ReplaceAllConfirm,
		LineCountMismatch, UnsavedChanges, UnsavedOpen, NotEditable, Cancelled,
	}
	for _, id := range ids {
		assert.NotEqual(t, id, c.T(id, map[string]any{}), id)
	}
	for _, id := range []string{ReplacedAll, Exported, Imported, DuplicateKeys} {
		assert.NotEqual(t, id, c.N(id, 2, nil), id)
	}
}

func TestLocales(t *testing.T) {
	assert.Equal(t, []string{"en", "fr"}, Locales())
}
