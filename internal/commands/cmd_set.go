package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/status"
	"github.com/hay-kot/i2edit/internal/printer"
)

type SetCmd struct {
	flags *Flags
	stdin io.Reader

	// flags
	lang   string
	output string
}

// NewSetCmd creates a new set command
func NewSetCmd(flags *Flags) *SetCmd {
	return &SetCmd{flags: flags, stdin: os.Stdin}
}

// Register adds the set command to the application
func (cmd *SetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "set",
		Usage:     "Change the text of a term",
		UsageText: "i2edit set <file> <term> <text|-> [--lang L] [-o out.json]",
		Description: `Stores text for the first term with the given key in the selected language
and saves the document. Pass '-' as the text to read it from stdin; a single
trailing newline is dropped.

The document is saved in place unless --output is given.`,
		Flags: []cli.Flag{
			langFlag(&cmd.lang),
			outputFlag(&cmd.output, "write the document to this path instead of in place"),
		},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *SetCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 3, 3); err != nil {
		return err
	}
	path, key, text := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)
	ctx = withDocument(ctx, c, path)

	if text == "-" {
		data, err := io.ReadAll(cmd.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	}

	s, err := cmd.flags.openDocument(ctx, path, cmd.lang)
	if err != nil {
		return err
	}

	if _, _, err := s.SelectKey(key); err != nil {
		return err
	}
	if err := s.SetBuffer(text); err != nil {
		return err
	}
	row, err := s.Commit()
	if err != nil {
		return err
	}

	printer.Ctx(ctx).Infof("%s", cmd.flags.catalog().T(status.TermUpdated, map[string]any{"Term": row.Key}))
	return cmd.flags.saveDocument(ctx, s, cmd.output)
}
