package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/core/textcol"
	"github.com/hay-kot/i2edit/internal/printer"
)

type ImportCmd struct {
	flags   *Flags
	confirm ConfirmFunc
	stdin   *os.File

	// flags
	lang   string
	force  bool
	output string
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags, confirm: huhConfirm, stdin: os.Stdin}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Import a language column from text",
		UsageText: "i2edit import <file> [text-file] [--lang L] [--force] [-o out.json]",
		Description: `Reads records written by 'i2edit export' and stores them, in order, as the
text of each term in the selected language. Unquoted lines from older
exports are taken literally. Reads stdin when no text file is given.

When the record count differs from the term count only the overlapping
prefix is imported, after confirmation unless --force is given. The
document is saved in place unless --output is given.`,
		Flags: []cli.Flag{
			langFlag(&cmd.lang),
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "import the overlapping records without asking when counts differ",
				Destination: &cmd.force,
			},
			outputFlag(&cmd.output, "write the document to this path instead of in place"),
		},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 1, 2); err != nil {
		return err
	}
	path, source := c.Args().Get(0), c.Args().Get(1)
	ctx = withDocument(ctx, c, path)
	p := printer.Ctx(ctx)
	cat := cmd.flags.catalog()

	values, err := cmd.readValues(source)
	if err != nil {
		return err
	}
	if source == "" {
		source = "stdin"
	}

	s, err := cmd.flags.openDocument(ctx, path, cmd.lang)
	if err != nil {
		return err
	}

	plan := s.PlanImport(values)
	if plan.Mismatch() {
		msg := cat.T(status.LineCountMismatch, map[string]any{"Lines": plan.Lines, "Rows": plan.Rows})
		if cmd.force {
			p.Warnf("%s", msg)
		} else {
			ok, err := cmd.confirm(msg, fmt.Sprintf("%d record(s) will be imported", plan.Applicable()))
			if err != nil {
				return needsFlag(err, "--force")
			}
			if !ok {
				p.Infof("%s", cat.T(status.Cancelled, nil))
				return nil
			}
		}
	}

	n, err := s.ImportColumn(values)
	if err != nil {
		return err
	}
	p.Successf("%s", cat.N(status.Imported, n, map[string]any{"Path": source}))

	return cmd.flags.saveDocument(ctx, s, cmd.output)
}

// readValues reads records from path, or from stdin when path is empty.
func (cmd *ImportCmd) readValues(path string) ([]string, error) {
	if path != "" {
		return textcol.ReadFile(path)
	}
	if cmd.stdin == nil || term.IsTerminal(int(cmd.stdin.Fd())) {
		return nil, errors.New("no input provided (stdin is a terminal); pass a text file or pipe records in")
	}
	return textcol.Read(cmd.stdin)
}
