// Package printer writes styled, human-facing CLI output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/i2edit/internal/core/styles"
)

type ctxKey struct{}

// Printer prefixes each message with a colored status marker.
type Printer struct {
	w io.Writer
}

// New returns a Printer that writes to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter stores p in ctx.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.TextSuccessStyle, "✔", format, args...)
}

// Infof prints an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.TextPrimaryStyle, "•", format, args...)
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.TextWarningStyle, "!", format, args...)
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.TextErrorStyle, "✘", format, args...)
}

// Printf prints an unadorned line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) line(style lipgloss.Style, marker, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", style.Render(marker), fmt.Sprintf(format, args...))
}
