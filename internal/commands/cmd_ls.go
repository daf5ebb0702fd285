package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/editing"
	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/view"
	"github.com/hay-kot/i2edit/internal/printer"
	"github.com/hay-kot/i2edit/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	lang         string
	filter       string
	untranslated bool
	jsonOutput   bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List the terms of a document",
		UsageText: "i2edit ls <file> [--lang L] [--filter GLOB] [--untranslated] [--json]",
		Description: `Displays one row per term in document order with its ordinal, key and a
single-line preview of the text in the selected language.

--filter matches term keys with a glob where '/' separates segments, so
'Menu/*' lists direct children of Menu and 'Menu/**' every descendant.

Use --json for one JSON object per line carrying the full text.`,
		Flags: []cli.Flag{
			langFlag(&cmd.lang),
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "only list terms whose key matches this glob",
				Destination: &cmd.filter,
			},
			&cli.BoolFlag{
				Name:        "untranslated",
				Aliases:     []string{"u"},
				Usage:       "only list terms with no text in the selected language",
				Destination: &cmd.untranslated,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

// rowInfo is the JSON output format for i2edit ls --json.
type rowInfo struct {
	Ordinal   int    `json:"ordinal"`
	Key       string `json:"key"`
	Text      string `json:"text"`
	Missing   bool   `json:"missing,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 1, 1); err != nil {
		return err
	}
	if cmd.filter != "" && !doublestar.ValidatePattern(cmd.filter) {
		return fmt.Errorf("invalid filter pattern %q", cmd.filter)
	}

	path := c.Args().First()
	ctx = withDocument(ctx, c, path)

	s, err := cmd.flags.openDocument(ctx, path, cmd.lang)
	if err != nil {
		return err
	}

	if s.View().Len() == 0 {
		printer.Ctx(ctx).Warnf("%s", cmd.flags.catalog().T(status.NoTerms, nil))
		return nil
	}

	rows := cmd.selectRows(s)
	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, row := range rows {
			info := rowInfo{
				Ordinal:   row.Ordinal,
				Key:       row.Key,
				Text:      s.Document().TextAt(row.Position, s.Language()),
				Missing:   row.Missing,
				Duplicate: row.Duplicate,
			}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode row: %w", err)
			}
		}
		return nil
	}

	width := cmd.flags.config().TUI.PreviewWidth
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tTERM\tTEXT")
	for _, row := range rows {
		key := row.Key
		if row.Duplicate {
			key += " (dup)"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", row.Ordinal, key, ansi.Truncate(row.Preview, width, "…"))
	}
	return w.Flush()
}

// selectRows applies the key filter and untranslated filter.
func (cmd *LsCmd) selectRows(s *editing.Session) []view.Row {
	var out []view.Row
	for _, row := range s.View().Rows() {
		if cmd.filter != "" {
			if ok, _ := doublestar.Match(cmd.filter, row.Key); !ok {
				continue
			}
		}
		if cmd.untranslated && s.Document().TextAt(row.Position, s.Language()) != "" {
			continue
		}
		out = append(out, row)
	}
	return out
}
