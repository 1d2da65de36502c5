// Package console narrates a run to the operator on pterm prefix printers.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

type Console struct {
	verbose bool
	info    *pterm.PrefixPrinter
	warn    *pterm.PrefixPrinter
	err     *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
	debug   *pterm.PrefixPrinter
}

func New(w io.Writer, verbose bool) *Console {
	if w == nil {
		w = os.Stderr
	}
	debug := pterm.Debug
	debug.Debugger = false
	return &Console{
		verbose: verbose,
		info:    pterm.Info.WithWriter(w),
		warn:    pterm.Warning.WithWriter(w),
		err:     pterm.Error.WithWriter(w),
		success: pterm.Success.WithWriter(w),
		debug:   debug.WithWriter(w),
	}
}

func Discard() *Console {
	return New(io.Discard, false)
}

func (c *Console) Infof(format string, args ...any) {
	c.info.Println(fmt.Sprintf(format, args...))
}

func (c *Console) Warnf(format string, args ...any) {
	c.warn.Println(fmt.Sprintf(format, args...))
}

func (c *Console) Errorf(format string, args ...any) {
	c.err.Println(fmt.Sprintf(format, args...))
}

func (c *Console) Successf(format string, args ...any) {
	c.success.Println(fmt.Sprintf(format, args...))
}

// Debugf prints only with --verbose.
func (c *Console) Debugf(format string, args ...any) {
	if !c.verbose {
		return
	}
	c.debug.Println(fmt.Sprintf(format, args...))
}
