package diagnostic

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

// Fprint writes one line per diagnostic to w, errors first. Severities are
// colored when w is a terminal.
func Fprint(w io.Writer, d *Diagnostics) error {
	color := isTerminal(w)

	for _, diag := range d.All() {
		severity := diag.Severity.String()
		if color {
			severity = severityColor(diag.Severity) + severity + colorReset
		}

		if _, err := fmt.Fprintf(w, "%s: %s\n", severity, diag); err != nil {
			return err
		}
	}

	return nil
}

func severityColor(s DiagnosticSeverity) string {
	switch s {
	case DiagnosticError:
		return colorRed
	case DiagnosticWarning:
		return colorYellow
	default:
		return colorCyan
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
