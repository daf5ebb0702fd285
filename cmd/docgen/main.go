// Command docgen renders the i2edit command reference from the CLI
// definitions: a markdown page and a man page, written next to each other.
//
//	go run ./cmd/docgen [dir]
//
// dir defaults to docs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/commands"
)

type target struct {
	name   string
	render func(*cli.Command) (string, error)
}

var targets = []target{
	{"cli-reference.md", docs.ToMarkdown},
	{"i2edit.1", docs.ToMan},
}

func main() {
	dir := "docs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := generate(commands.NewApp(&commands.Flags{}), dir); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
}

func generate(app *cli.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for _, t := range targets {
		out, err := t.render(app)
		if err != nil {
			return fmt.Errorf("render %s: %w", t.name, err)
		}

		path := filepath.Join(dir, t.name)
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println("generated", path)
	}
	return nil
}
