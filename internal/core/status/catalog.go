// Package status holds the user-facing status and prompt strings shown by
// the CLI and TUI, localized with go-i18n from embedded TOML files.
package status

import (
	"embed"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/hay-kot/i2edit/internal/core/logging"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

var localeFiles = []string{"locales/active.en.toml", "locales/active.fr.toml"}

// Locales lists the locales that ship a message file, English first.
func Locales() []string {
	out := make([]string, 0, len(localeFiles))
	for _, f := range localeFiles {
		out = append(out, strings.TrimSuffix(strings.TrimPrefix(path.Base(f), "active."), ".toml"))
	}
	return out
}

// Message identifiers.
const (
	NoDocument         = "NoDocument"
	FileLoaded         = "FileLoaded"
	LoadFailed         = "LoadFailed"
	FileSaved          = "FileSaved"
	SaveFailed         = "SaveFailed"
	NoTerms            = "NoTerms"
	DisplayingLanguage = "DisplayingLanguage"
	TermUpdated        = "TermUpdated"
	NothingSelected    = "NothingSelected"
	Found              = "Found"
	NotFound           = "NotFound"
	EnterSearchTerm    = "EnterSearchTerm"
	ReplacedInEditor   = "ReplacedInEditor"
	NotFoundInEditor   = "NotFoundInEditor"
	ReplaceAllConfirm  = "ReplaceAllConfirm"
	ReplacedAll        = "ReplacedAll"
	Exported           = "Exported"
	Imported           = "Imported"
	LineCountMismatch  = "LineCountMismatch"
	UnsavedChanges     = "UnsavedChanges"
	UnsavedOpen        = "UnsavedOpen"
	NotEditable        = "NotEditable"
	DuplicateKeys      = "DuplicateKeys"
	Cancelled          = "Cancelled"
)

// Catalog renders messages for one locale, falling back to English.
type Catalog struct {
	localizer *i18n.Localizer
	locale    language.Tag
	log       zerolog.Logger
}

// New builds a Catalog for locale (e.g. "fr"). Unknown or unparsable locales
// fall back to English.
func New(locale string) *Catalog {
	log := logging.Component("status")

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("failed to load locale file")
		}
	}

	return &Catalog{
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		locale:    tag,
		log:       log,
	}
}

// Locale returns the tag the catalog was built for.
func (c *Catalog) Locale() language.Tag { return c.locale }

// T renders message id with optional template data. The id itself is
// returned when no translation exists.
func (c *Catalog) T(id string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// N renders a plural message. Count is added to the template data.
func (c *Catalog) N(id string, count int, data map[string]any) string {
	td := make(map[string]any, len(data)+1)
	for k, v := range data {
		td[k] = v
	}
	td["Count"] = count

	return c.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: td, PluralCount: count})
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig) string {
	if cfg.MessageID == "" {
		return ""
	}
	msg, err := c.localizer.Localize(cfg)
	if err != nil {
		c.log.Debug().Err(err).Str("id", cfg.MessageID).Msg("localize failed")
		return cfg.MessageID
	}
	return msg
}
