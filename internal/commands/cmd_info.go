package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/i2edit/internal/core/editing"
	"github.com/hay-kot/i2edit/internal/core/i2doc"
	"github.com/hay-kot/i2edit/internal/core/styles"
	"github.com/hay-kot/i2edit/pkg/iojson"
)

type InfoCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	width      int
}

// NewInfoCmd creates a new info command
func NewInfoCmd(flags *Flags) *InfoCmd {
	return &InfoCmd{flags: flags}
}

// Register adds the info command to the application
func (cmd *InfoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "info",
		Usage:     "Summarize a document",
		UsageText: "i2edit info <file> [--json]",
		Description: `Shows where the terms array was found, how many terms the document holds,
every language column with its name and code, the detected default language,
and per-column counts of missing and empty translations.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "word wrap width for rendered output",
				Value:       100,
				Destination: &cmd.width,
			},
		},
		ShellComplete: cmd.flags.RecentDocumentCompleter(),
		Action:        cmd.run,
	})

	return app
}

// languageInfo is one column of a documentInfo.
type languageInfo struct {
	i2doc.Language
	Missing int `json:"missing"`
	Empty   int `json:"empty"`
}

// documentInfo is the JSON output format for i2edit info --json.
type documentInfo struct {
	Path            string           `json:"path"`
	Schema          string           `json:"schema"`
	Terms           int              `json:"terms"`
	DefaultLanguage int              `json:"default_language"`
	Detected        bool             `json:"detected"`
	Languages       []languageInfo   `json:"languages"`
	Duplicates      map[string][]int `json:"duplicates,omitempty"` // key -> ordinals
}

func (cmd *InfoCmd) run(ctx context.Context, c *cli.Command) error {
	if err := argsN(c, 1, 1); err != nil {
		return err
	}
	path := c.Args().First()
	ctx = withDocument(ctx, c, path)

	s, err := cmd.flags.openDocument(ctx, path, "")
	if err != nil {
		return err
	}

	info := buildDocumentInfo(s, cmd.flags.config().Probes)

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, info)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(cmd.width),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(info.markdown())
	if err != nil {
		return fmt.Errorf("render info: %w", err)
	}

	_, err = fmt.Fprint(c.Root().Writer, out)
	return err
}

func buildDocumentInfo(s *editing.Session, probes []i2doc.Probe) documentInfo {
	doc := s.Document()
	_, detected := doc.DetectDefaultLanguage(probes)

	info := documentInfo{
		Path:            s.Path(),
		Schema:          string(doc.Schema()),
		Terms:           doc.Len(),
		DefaultLanguage: s.Language(),
		Detected:        detected,
	}

	for _, l := range doc.Languages() {
		li := languageInfo{Language: l}
		for pos := range doc.Len() {
			switch {
			case !doc.HasText(pos, l.Index):
				li.Missing++
			case doc.TextAt(pos, l.Index) == "":
				li.Empty++
			}
		}
		info.Languages = append(info.Languages, li)
	}

	if dups := s.View().Duplicates(); len(dups) > 0 {
		info.Duplicates = make(map[string][]int, len(dups))
		for key, positions := range dups {
			ordinals := make([]int, len(positions))
			for i, pos := range positions {
				ordinals[i] = pos + 1
			}
			info.Duplicates[key] = ordinals
		}
	}

	return info
}

func (info documentInfo) markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", mdEscape(info.Path))

	def := i2doc.Label(info.DefaultLanguage)
	for _, l := range info.Languages {
		if l.Index == info.DefaultLanguage {
			def = l.Title()
		}
	}
	if !info.Detected {
		def += " (not detected, using first column)"
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Terms array | `%s` |\n", info.Schema)
	fmt.Fprintf(&b, "| Terms | %d |\n", info.Terms)
	fmt.Fprintf(&b, "| Default language | %s |\n\n", mdEscape(def))

	if len(info.Languages) > 0 {
		b.WriteString("## Languages\n\n")
		b.WriteString("| Column | Name | Code | Missing | Empty |\n|---|---|---|---:|---:|\n")
		for _, l := range info.Languages {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %d |\n",
				l.Label, mdEscape(l.Name), mdEscape(l.Code), l.Missing, l.Empty)
		}
		b.WriteString("\n")
	}

	if len(info.Duplicates) > 0 {
		b.WriteString("## Duplicate keys\n\n")
		keys := make([]string, 0, len(info.Duplicates))
		for key := range info.Duplicates {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			rows := make([]string, len(info.Duplicates[key]))
			for i, o := range info.Duplicates[key] {
				rows[i] = fmt.Sprint(o)
			}
			fmt.Fprintf(&b, "- `%s`: rows %s\n", key, strings.Join(rows, ", "))
		}
	}

	return b.String()
}

var mdReplacer = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}
