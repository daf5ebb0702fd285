package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/commands"
	"github.com/hay-kot/i2edit/internal/core/config"
	"github.com/hay-kot/i2edit/internal/core/logging"
	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/styles"
	"github.com/hay-kot/i2edit/internal/printer"
	"github.com/hay-kot/i2edit/internal/store/jsonfile"
	"github.com/hay-kot/i2edit/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// them from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	// Optional .env in the working directory; real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to read .env: %v\n", err)
	}

	ctx := printer.WithPrinter(context.Background(), printer.New(os.Stderr))

	var logCloser func()

	flags := &commands.Flags{}
	app := commands.NewApp(flags)
	app.Version = build()

	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// Always log to a file; use explicit path or default to <datadir>/i2edit.log
		logFile := flags.LogFile
		if logFile == "" {
			logFile = filepath.Join(flags.DataDir, "i2edit.log")
		}

		logger, closer, err := logutils.New(flags.LogLevel, logFile)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		if !styles.SetThemeByName(cfg.Theme) {
			log.Warn().Str("theme", cfg.Theme).Msg("unknown theme, using default")
		}

		flags.Catalog = status.New(cfg.Locale)
		flags.Recent = jsonfile.NewRecentStore(cfg.RecentFile())

		log.Debug().
			Str("config", flags.ConfigPath).
			Str("data_dir", flags.DataDir).
			Str("locale", cfg.Locale).
			Msg("startup")

		return ctx, nil
	}

	app.After = func(ctx context.Context, c *cli.Command) error {
		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	exitCode := 0
	if runErr := app.Run(ctx, os.Args); runErr != nil {
		var exitErr cli.ExitCoder
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
		} else {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, runErr.Error())
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}
