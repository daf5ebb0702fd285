package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/i2edit/internal/core/config"
	"github.com/hay-kot/i2edit/internal/core/editing"
	"github.com/hay-kot/i2edit/internal/core/i2doc"
	"github.com/hay-kot/i2edit/internal/core/logging"
	"github.com/hay-kot/i2edit/internal/core/recent"
	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/printer"
)

// errNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal. Callers add the flag that skips the question with
// needsFlag.
var errNotInteractive = errors.New("confirmation required but stdin is not a terminal")

// needsFlag names the flag that bypasses a prompt when err is
// errNotInteractive. Other errors are returned unchanged.
func needsFlag(err error, flag string) error {
	if errors.Is(err, errNotInteractive) {
		return fmt.Errorf("%w; pass %s to proceed", err, flag)
	}
	return err
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(title, description string) (bool, error)

// huhConfirm prompts on the terminal. Aborting the form counts as "no".
func huhConfirm(title, description string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errNotInteractive
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func langFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "lang",
		Aliases:     []string{"l"},
		Usage:       `language column: number, "Language N", code or name (default: detected)`,
		Destination: dest,
	}
}

func outputFlag(dest *string, usage string) cli.Flag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       usage,
		Destination: dest,
	}
}

func (f *Flags) config() *config.Config {
	if f.Config == nil {
		cfg := config.DefaultConfig()
		f.Config = &cfg
	}
	return f.Config
}

func (f *Flags) catalog() *status.Catalog {
	if f.Catalog == nil {
		f.Catalog = status.New(f.config().Locale)
	}
	return f.Catalog
}

// newSession returns an empty session configured from the loaded config. Its
// log events carry the document and command recorded on ctx.
func (f *Flags) newSession(ctx context.Context) *editing.Session {
	return editing.NewSession(logging.ComponentCtx(ctx, "editing"), editing.WithProbes(f.config().Probes))
}

// openDocument loads path and switches to the lang column when one is given.
func (f *Flags) openDocument(ctx context.Context, path, lang string) (*editing.Session, error) {
	s := f.newSession(ctx)
	if err := s.Open(path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if lang != "" {
		idx, err := s.Document().ResolveLanguage(lang)
		if err != nil {
			return nil, err
		}
		if err := s.SetLanguage(idx); err != nil {
			return nil, err
		}
	}

	log.Debug().Ctx(ctx).
		Str("language", i2doc.Label(s.Language())).
		Msg("document opened")
	return s, nil
}

// saveDocument writes s to output, or back to its own path when output is
// empty, and reports the result.
func (f *Flags) saveDocument(ctx context.Context, s *editing.Session, output string) error {
	if err := s.Save(output); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	printer.Ctx(ctx).Successf("%s", f.catalog().T(status.FileSaved, map[string]any{"Path": s.Path()}))
	f.touchRecent(ctx, s)
	return nil
}

// touchRecent records s as the most recently used document. Failures are
// logged and otherwise ignored.
func (f *Flags) touchRecent(ctx context.Context, s *editing.Session) {
	if f.Recent == nil || s.Path() == "" {
		return
	}

	entry := recent.NewEntry(s.Path(), s.Language(), time.Now())
	if err := f.Recent.Touch(ctx, entry, f.config().Recent.MaxEntries); err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("path", entry.Path).Msg("failed to update recent documents")
	}
}

// withDocument tags ctx with the command and document for log events.
func withDocument(ctx context.Context, c *cli.Command, path string) context.Context {
	return logging.WithDocument(logging.WithCommand(ctx, c.Name), path)
}

// argsN validates the positional argument count.
func argsN(c *cli.Command, lo, hi int) error {
	n := c.Args().Len()
	if n < lo || n > hi {
		return fmt.Errorf("usage: %s", c.UsageText)
	}
	return nil
}
