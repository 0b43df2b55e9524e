package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes diagnostics in a human-readable form.
type Printer struct {
	w       io.Writer
	errorC  *color.Color
	warnC   *color.Color
	infoC   *color.Color
	locC    *color.Color
	summary *color.Color
}

// NewPrinter returns a printer writing to w, colored when useColor is set.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:       w,
		errorC:  color.New(color.FgRed, color.Bold),
		warnC:   color.New(color.FgYellow, color.Bold),
		infoC:   color.New(color.FgCyan),
		locC:    color.New(color.Faint),
		summary: color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.errorC, p.warnC, p.infoC, p.locC, p.summary} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Print writes errors, then warnings, then infos when verbose is set,
// followed by a one-line summary.
func (p *Printer) Print(d *Diagnostics, verbose bool) {
	for _, e := range d.Errors {
		p.line(p.errorC, e)
	}

	for _, w := range d.Warnings {
		p.line(p.warnC, w)
	}

	if verbose {
		for _, i := range d.Infos {
			p.line(p.infoC, i)
		}
	}

	if len(d.Errors) > 0 || len(d.Warnings) > 0 {
		p.summary.Fprintf(p.w, "%d error(s), %d warning(s)\n", len(d.Errors), len(d.Warnings))
	}
}

func (p *Printer) line(c *color.Color, d Diagnostic) {
	c.Fprint(p.w, d.Severity.String())

	if loc := d.Location(); loc != "" {
		fmt.Fprint(p.w, " ")
		p.locC.Fprint(p.w, loc)
	}

	if d.Code != "" {
		fmt.Fprintf(p.w, " [%s]", d.Code)
	}

	fmt.Fprintf(p.w, ": %s\n", d.Message)
}
