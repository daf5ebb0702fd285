package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/printer"
)

type ReplaceCmd struct {
	flags   *Flags
	confirm ConfirmFunc

	// flags
	lang   string
	yes    bool
	dryRun bool
	output string
}

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(flags *Flags) *ReplaceCmd {
	return &ReplaceCmd{flags: flags, confirm: huhConfirm}
}

// Register adds the replace command to the application
func (cmd *ReplaceCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "replace",
		Usage:     "Replace text in every term of a language",
		UsageText: "i2edit replace <file> <query> <replacement> [--lang L] [--yes] [--dry-run] [-o out.json]",
		Description: `Replaces every occurrence of query, ignoring case, in every term of the
selected language. The replacement is inserted literally.

This cannot be undone, so you are asked to confirm first unless --yes is
given. The document is saved in place unless --output is given.`,
		Flags: []cli.Flag{
			langFlag(&cmd.lang),
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "do not ask for confirmation",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "report what would change without saving",
				Destination: &cmd.dryRun,
			},
			outputFlag(&cmd.output, "write the document to this path instead of in place"),
		},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ReplaceCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 3, 3); err != nil {
		return err
	}
	path, query, replacement := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)
	ctx = withDocument(ctx, c, path)
	p := printer.Ctx(ctx)
	cat := cmd.flags.catalog()

	if query == "" {
		return fmt.Errorf("%s", cat.T(status.EnterSearchTerm, nil))
	}

	s, err := cmd.flags.openDocument(ctx, path, cmd.lang)
	if err != nil {
		return err
	}

	occurrences, rows := s.CountMatches(query)
	if occurrences == 0 {
		p.Warnf("%s", cat.T(status.NotFound, map[string]any{"Query": query}))
		return nil
	}

	summary := fmt.Sprintf("%d occurrence(s) in %d term(s)", occurrences, rows)
	if cmd.dryRun {
		p.Infof("%s", summary)
		return nil
	}

	if !cmd.yes {
		ok, err := cmd.confirm(cat.T(status.ReplaceAllConfirm, map[string]any{"Query": query, "Replacement": replacement}), summary)
		if err != nil {
			return needsFlag(err, "--yes")
		}
		if !ok {
			p.Infof("%s", cat.T(status.Cancelled, nil))
			return nil
		}
	}

	n := s.ReplaceAll(query, replacement)
	p.Successf("%s", cat.N(status.ReplacedAll, n, nil))

	return cmd.flags.saveDocument(ctx, s, cmd.output)
}
