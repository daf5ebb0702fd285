package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/editing"
	"github.com/hay-kot/i2edit/internal/core/logging"
	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/profiler"
	"github.com/hay-kot/i2edit/internal/tui"
)

// ProgramFunc runs a bubbletea model to completion.
type ProgramFunc func(ctx context.Context, m tea.Model) (tea.Model, error)

func runProgram(ctx context.Context, m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
}

type TuiCmd struct {
	flags   *Flags
	program ProgramFunc

	// flags
	lang         string
	profilerPort int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags, program: runProgram}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		langFlag(&cmd.lang),
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "serve pprof on this localhost port while the editor runs (0 disables)",
			Sources:     cli.EnvVars("I2EDIT_PROFILER_PORT"),
			Hidden:      true,
			Destination: &cmd.profilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("usage: %s", c.UsageText)
	}
	return cmd.run(ctx, c.Args().First())
}

func (cmd *TuiCmd) run(ctx context.Context, path string) error {
	ctx = logging.WithDocument(logging.WithCommand(ctx, "tui"), path)
	s, err := cmd.open(ctx, path)
	if err != nil {
		return err
	}
	ctx = logging.WithDocument(ctx, s.Path())
	cmd.flags.touchRecent(ctx, s)

	cfg := cmd.flags.config()
	model := tui.New(s, tui.Options{
		Catalog:        cmd.flags.catalog(),
		LineEnding:     cfg.Export.LineEnding,
		PreviewWidth:   cfg.TUI.PreviewWidth,
		ExportFileName: cfg.Export.FileName,
		Recent:         cmd.flags.Recent,
		RecentMax:      cfg.Recent.MaxEntries,
	})

	if cmd.profilerPort > 0 {
		prof := profiler.New(cmd.profilerPort)
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().Ctx(ctx).
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", prof.Addr())).
			Msg("profiler endpoint available")
	}

	log.Info().Ctx(ctx).Msg("starting editor")
	if _, err := cmd.program(ctx, model); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	// remember the language the user ended on
	cmd.flags.touchRecent(ctx, s)
	return nil
}

// open loads path, or the most recently used document when path is empty.
// A recent entry that can no longer be opened is forgotten.
func (cmd *TuiCmd) open(ctx context.Context, path string) (*editing.Session, error) {
	if path != "" {
		return cmd.flags.openDocument(ctx, path, cmd.lang)
	}

	if cmd.flags.Recent != nil {
		entries, err := cmd.flags.Recent.List(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to read recent documents")
		}
		if len(entries) > 0 {
			latest := entries[0]
			s, err := cmd.flags.openDocument(ctx, latest.Path, cmd.lang)
			if err != nil {
				if rmErr := cmd.flags.Recent.Remove(ctx, latest.Path); rmErr != nil {
					log.Warn().Err(rmErr).Str("path", latest.Path).Msg("failed to forget recent document")
				}
				return nil, err
			}
			if cmd.lang == "" {
				if err := s.SetLanguage(latest.Language); err != nil {
					log.Debug().Err(err).Int("language", latest.Language).Msg("recent language not available")
				}
			}
			return s, nil
		}
	}

	return nil, errors.New(cmd.flags.catalog().T(status.NoDocument, nil))
}
