package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/i2edit/internal/core/config"
	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/styles"
	"github.com/hay-kot/i2edit/internal/core/textcol"
	"github.com/hay-kot/i2edit/internal/printer"
)

// InitFormFunc lets the user adjust a starter config in place.
type InitFormFunc func(cfg *config.Config) error

type ConfigInitCmd struct {
	flags   *Flags
	confirm ConfirmFunc
	form    InitFormFunc

	// flags
	yes   bool
	force bool
}

// NewConfigInitCmd creates a new config init command.
func NewConfigInitCmd(flags *Flags) *ConfigInitCmd {
	return &ConfigInitCmd{flags: flags, confirm: huhConfirm, form: huhInitForm}
}

func (cmd *ConfigInitCmd) command() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a starter configuration file",
		UsageText: "i2edit config init [--yes] [--force]",
		Description: `Asks for the interface locale, color theme and export line ending and
writes them, with the default language probes, to the config file.

An existing file is backed up to <config>.bak before it is replaced.
Use --yes to accept all defaults without prompts.
Use --force to overwrite an existing file without asking.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	}
}

func (cmd *ConfigInitCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	path := cmd.flags.ConfigPath
	if path == "" {
		path = DefaultConfigPath()
	}

	if config.Exists(path) && !cmd.force {
		if cmd.yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", path)
		}
		ok, err := cmd.confirm("Config file already exists", path+"\nOverwrite? (a backup will be created)")
		if err != nil {
			return needsFlag(err, "--force")
		}
		if !ok {
			p.Infof("%s", cmd.flags.catalog().T(status.Cancelled, nil))
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.DataDir = cmd.flags.DataDir
	if !cmd.yes {
		if err := cmd.form(&cfg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				p.Infof("%s", cmd.flags.catalog().T(status.Cancelled, nil))
				return nil
			}
			return needsFlag(err, "--yes")
		}
	}
	if cfg.DataDir != "" {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	backup, err := config.Backup(path)
	if err != nil {
		return err
	}
	if backup != "" {
		p.Infof("Backed up existing config to %s", backup)
	}

	if err := cfg.Write(path); err != nil {
		return err
	}
	p.Successf("Wrote %s", path)
	return nil
}

// huhInitForm asks for the interactive settings.
func huhInitForm(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotInteractive
	}

	themes := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Interface language").
				Options(huh.NewOptions(status.Locales()...)...).
				Value(&cfg.Locale),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&cfg.Theme),
			huh.NewSelect[textcol.LineEnding]().
				Title("Line ending for exported text files").
				Options(
					huh.NewOption("LF (unix)", textcol.LF),
					huh.NewOption("CRLF (windows)", textcol.CRLF),
				).
				Value(&cfg.Export.LineEnding),
		),
	).Run()
}
