package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// RecentDocumentCompleter returns a ShellCompleteFunc that suggests recently
// opened documents for the first positional argument. Set it as the
// ShellComplete field on any cli.Command whose first argument is a document.
//
// When the user's last typed argument starts with "-", or the document has
// already been given, it falls back to the default flag completion behavior.
func (f *Flags) RecentDocumentCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if args.Len() > 1 || (len(last) > 0 && last[0] == '-') {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if f.Recent == nil {
			return
		}
		entries, err := f.Recent.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, e := range entries {
			_, _ = fmt.Fprintln(w, e.Path)
		}
	}
}
