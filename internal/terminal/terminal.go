// Package terminal renders CLI error reports.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var errorPrefix = color.New(color.Bold, color.FgRed)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PrintError writes err to f as an "Error:" line, coloured when f is a terminal.
func PrintError(f *os.File, err error) {
	Fprint(f, IsTerminal(f), err)
}

// Fprint writes err to w as an "Error:" line, coloured when colored is set.
func Fprint(w io.Writer, colored bool, err error) {
	if err == nil {
		return
	}
	prefix := "Error:"
	if colored {
		c := *errorPrefix
		c.EnableColor()
		prefix = c.Sprint(prefix)
	}
	_, _ = fmt.Fprintf(w, "%s %v\n", prefix, err)
}
