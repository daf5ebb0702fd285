package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/view"
	"github.com/hay-kot/i2edit/internal/printer"
)

type FindCmd struct {
	flags *Flags

	// flags
	lang  string
	after int
	all   bool
}

// NewFindCmd creates a new find command
func NewFindCmd(flags *Flags) *FindCmd {
	return &FindCmd{flags: flags}
}

// Register adds the find command to the application
func (cmd *FindCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "find",
		Usage:     "Search term texts",
		UsageText: "i2edit find <file> <query> [--lang L] [--after N] [--all]",
		Description: `Searches the full text of every term in the selected language for query,
ignoring case. By default prints the first match after row N (wrapping to
the top); --all prints every matching row.

Exits with status 1 when nothing matches.`,
		Flags: []cli.Flag{
			langFlag(&cmd.lang),
			&cli.IntFlag{
				Name:        "after",
				Aliases:     []string{"a"},
				Usage:       "start searching after this row number",
				Destination: &cmd.after,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "print every matching row",
				Destination: &cmd.all,
			},
		},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *FindCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 2, 2); err != nil {
		return err
	}
	path, query := c.Args().Get(0), c.Args().Get(1)
	ctx = withDocument(ctx, c, path)
	p := printer.Ctx(ctx)

	if query == "" {
		return fmt.Errorf("%s", cmd.flags.catalog().T(status.EnterSearchTerm, nil))
	}

	s, err := cmd.flags.openDocument(ctx, path, cmd.lang)
	if err != nil {
		return err
	}

	var rows []view.Row
	if cmd.all {
		rows = s.FindAll(query)
	} else if row, ok := s.FindNext(query, cmd.after); ok {
		rows = []view.Row{row}
	}

	if len(rows) == 0 {
		p.Warnf("%s", cmd.flags.catalog().T(status.NotFound, map[string]any{"Query": query}))
		return cli.Exit("", 1)
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", row.Ordinal, row.Key, row.Preview)
	}
	return w.Flush()
}
