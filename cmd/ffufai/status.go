package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// printer writes user-facing status lines. Colour is dropped automatically
// when the output is not a terminal.
type printer struct {
	w    io.Writer
	info *color.Color
	warn *color.Color
	err  *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:    w,
		info: color.New(color.FgCyan),
		warn: color.New(color.FgYellow),
		err:  color.New(color.FgRed, color.Bold),
	}
}

// Infof prints an informational line.
func (p *printer) Infof(format string, args ...any) {
	_, _ = p.info.Fprint(p.w, "[*] ")
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Warnf prints a warning line.
func (p *printer) Warnf(format string, args ...any) {
	_, _ = p.warn.Fprintf(p.w, "Warning: "+format+"\n", args...)
}

// Errorf prints an error line.
func (p *printer) Errorf(format string, args ...any) {
	_, _ = p.err.Fprintf(p.w, "Error: "+format+"\n", args...)
}
