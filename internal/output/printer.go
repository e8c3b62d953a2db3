// Package output prints the tool's progress and diagnostics to the console.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes colored status lines. Notices go to Out, errors to Err, and
// trace lines to Out only when Verbose is set.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool

	notice *color.Color
	trace  *color.Color
	fail   *color.Color
}

// NewPrinter creates a Printer.
func NewPrinter(out, errOut io.Writer, verbose bool) *Printer {
	return &Printer{
		Out:     out,
		Err:     errOut,
		Verbose: verbose,
		notice:  color.New(color.FgYellow),
		trace:   color.New(color.FgCyan),
		fail:    color.New(color.FgRed),
	}
}

// Discard returns a Printer that writes nothing.
func Discard() *Printer {
	return NewPrinter(io.Discard, io.Discard, false)
}

// Noticef prints a line the user always sees, such as a skipped file.
func (p *Printer) Noticef(format string, args ...interface{}) {
	p.notice.Fprintln(p.Out, fmt.Sprintf(format, args...))
}

// Tracef prints a line only in verbose mode.
func (p *Printer) Tracef(format string, args ...interface{}) {
	if !p.Verbose {
		return
	}
	p.trace.Fprintln(p.Out, fmt.Sprintf(format, args...))
}

// Errorf prints a line to the error stream.
func (p *Printer) Errorf(format string, args ...interface{}) {
	p.fail.Fprintln(p.Err, fmt.Sprintf(format, args...))
}

// VerboseErrorf prints a line to the error stream only in verbose mode.
func (p *Printer) VerboseErrorf(format string, args ...interface{}) {
	if !p.Verbose {
		return
	}
	p.Errorf(format, args...)
}
