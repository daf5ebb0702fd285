package commands

import (
	"github.com/urfave/cli/v3"
)

// NewApp builds the root command with every subcommand registered and the
// editor as the default action. Lifecycle hooks are left to the caller.
func NewApp(flags *Flags) *cli.Command {
	app := &cli.Command{
		Name:      appName,
		Usage:     "Edit I2 Localization language files",
		UsageText: "i2edit [global options] [file] | i2edit command [command options]",
		Description: `i2edit opens the terms table of an I2 Localization JSON export one language
at a time, lets you edit, search and replace translations, and writes the
file back with every other byte of the document preserved.

Run 'i2edit <file>' to open the interactive editor, or 'i2edit' alone to
reopen the most recent document. The subcommands expose the same operations
for scripting.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("I2EDIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/i2edit.log)",
				Sources:     cli.EnvVars("I2EDIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("I2EDIT_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("I2EDIT_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
	}

	tuiCmd := NewTuiCmd(flags)

	app = NewInfoCmd(flags).Register(app)
	app = NewLsCmd(flags).Register(app)
	app = NewGetCmd(flags).Register(app)
	app = NewSetCmd(flags).Register(app)
	app = NewFindCmd(flags).Register(app)
	app = NewReplaceCmd(flags).Register(app)
	app = NewExportCmd(flags).Register(app)
	app = NewImportCmd(flags).Register(app)
	app = NewRecentCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)
	app.ArgsUsage = "[file]"
	app.ShellComplete = flags.RecentDocumentCompleter()
	app.Action = tuiCmd.Run

	return app
}
