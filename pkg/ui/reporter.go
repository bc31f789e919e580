package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/arthur-debert/plugboot/pkg/report"
	"github.com/pterm/pterm"
)

// Reporter prints user-visible messages with pterm, or as plain prefixed
// lines when the format is not a terminal
type Reporter struct {
	mu     sync.Mutex
	out    io.Writer
	format Format
}

// NewReporter creates a reporter writing to out in the given format
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

func (r *Reporter) emit(printer pterm.PrefixPrinter, label, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.format == FormatTerminal {
		_, _ = fmt.Fprintln(r.out, printer.Sprint(msg))
		return
	}
	_, _ = fmt.Fprintf(r.out, "[%s] %s\n", label, msg)
}

// Info prints an informational message
func (r *Reporter) Info(msg string) { r.emit(pterm.Info, "info", msg) }

// Warn prints a warning
func (r *Reporter) Warn(msg string) { r.emit(pterm.Warning, "warn", msg) }

// Error prints an error, typically raw tool output
func (r *Reporter) Error(msg string) { r.emit(pterm.Error, "error", msg) }

// Verify interface compliance
var _ report.Reporter = (*Reporter)(nil)
