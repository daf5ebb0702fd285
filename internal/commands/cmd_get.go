package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/printer"
)

type GetCmd struct {
	flags *Flags

	// flags
	lang string
}

// NewGetCmd creates a new get command
func NewGetCmd(flags *Flags) *GetCmd {
	return &GetCmd{flags: flags}
}

// Register adds the get command to the application
func (cmd *GetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "get",
		Usage:     "Print the full text of a term",
		UsageText: "i2edit get <file> <term> [--lang L]",
		Description: `Prints the untruncated text of the first term with the given key in the
selected language. Line breaks inside the text are printed as-is.`,
		Flags:         []cli.Flag{langFlag(&cmd.lang)},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *GetCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 2, 2); err != nil {
		return err
	}
	path, key := c.Args().Get(0), c.Args().Get(1)
	ctx = withDocument(ctx, c, path)

	s, err := cmd.flags.openDocument(ctx, path, cmd.lang)
	if err != nil {
		return err
	}

	row, text, err := s.SelectKey(key)
	if err != nil {
		return err
	}
	if n := len(s.View().RowsForKey(key)); n > 1 {
		printer.Ctx(ctx).Warnf("term %q is used by %d rows; showing row %d", key, n, row.Ordinal)
	}

	_, err = fmt.Fprintln(c.Root().Writer, text)
	return err
}
