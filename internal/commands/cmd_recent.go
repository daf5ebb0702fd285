package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/i2doc"
	"github.com/hay-kot/i2edit/internal/printer"
	"github.com/hay-kot/i2edit/pkg/iojson"
)

type RecentCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewRecentCmd creates a new recent command
func NewRecentCmd(flags *Flags) *RecentCmd {
	return &RecentCmd{flags: flags}
}

// Register adds the recent command to the application
func (cmd *RecentCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "recent",
		Usage:     "List recently opened documents",
		UsageText: "i2edit recent [--json]",
		Description: `Lists the documents opened or saved most recently, newest first, with the
language column last used. Running 'i2edit' without a file opens the first
one.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
		Commands: []*cli.Command{
			{
				Name:      "clear",
				Usage:     "Forget all recent documents",
				UsageText: "i2edit recent clear",
				Action:    cmd.runClear,
			},
		},
	})

	return app
}

func (cmd *RecentCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Recent == nil {
		return fmt.Errorf("recent documents store not configured")
	}

	entries, err := cmd.flags.Recent.List(ctx)
	if err != nil {
		return fmt.Errorf("list recent documents: %w", err)
	}

	if len(entries) == 0 {
		if !cmd.jsonOutput {
			printer.Ctx(ctx).Infof("No recent documents")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, e); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "OPENED\tLANGUAGE\tPATH")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.OpenedAt.Local().Format(time.DateTime), i2doc.Label(e.Language), e.Path)
	}
	return w.Flush()
}

func (cmd *RecentCmd) runClear(ctx context.Context, c *cli.Command) error {
	if cmd.flags.Recent == nil {
		return fmt.Errorf("recent documents store not configured")
	}
	if err := cmd.flags.Recent.Clear(ctx); err != nil {
		return fmt.Errorf("clear recent documents: %w", err)
	}
	printer.Ctx(ctx).Successf("Recent documents cleared")
	return nil
}
