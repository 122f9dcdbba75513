package output

import (
	"io"

	"github.com/fatih/color"
)

// Printer writes status lines for the non-interactive commands.
type Printer struct {
	out io.Writer
	err io.Writer
}

func NewPrinter(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

func (p *Printer) Info(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(p.err, "✗ "+format+"\n", args...)
}
