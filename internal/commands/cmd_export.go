package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/textcol"
	"github.com/hay-kot/i2edit/internal/printer"
)

type ExportCmd struct {
	flags *Flags

	// flags
	lang       string
	output     string
	lineEnding string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export a language column as text",
		UsageText: "i2edit export <file> [--lang L] [-o out.txt] [--line-ending lf|crlf]",
		Description: `Writes one record per term, in document order, for the selected language.
Each record is wrapped in double quotes with inner quotes doubled, so
'He said "hi"' is written as "He said ""hi""". Line breaks inside a text
are kept, so a record may span several lines.

Writes to stdout unless --output is given.`,
		Flags: []cli.Flag{
			langFlag(&cmd.lang),
			outputFlag(&cmd.output, "write to this file instead of stdout"),
			&cli.StringFlag{
				Name:        "line-ending",
				Usage:       "record terminator: lf or crlf (default from config)",
				Destination: &cmd.lineEnding,
			},
		},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 1, 1); err != nil {
		return err
	}
	path := c.Args().First()
	ctx = withDocument(ctx, c, path)

	le := cmd.flags.config().Export.LineEnding
	if cmd.lineEnding != "" {
		le = textcol.LineEnding(cmd.lineEnding)
	}
	if !le.Valid() {
		return fmt.Errorf("invalid line ending %q (want lf or crlf)", le)
	}

	s, err := cmd.flags.openDocument(ctx, path, cmd.lang)
	if err != nil {
		return err
	}
	values := s.ExportColumn()

	if cmd.output == "" || cmd.output == "-" {
		return textcol.Write(c.Root().Writer, values, le)
	}

	if err := textcol.WriteFile(cmd.output, values, le); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("%s", cmd.flags.catalog().N(status.Exported, len(values), map[string]any{"Path": cmd.output}))
	return nil
}
