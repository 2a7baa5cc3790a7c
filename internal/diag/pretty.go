package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// PrettyOpts controls Pretty output.
type PrettyOpts struct {
	Color     bool // colorize severity labels
	ShowTitle bool // append the code title on a second line
}

func severityColor(sev Severity) *color.Color {
	switch sev {
	case SevFatal:
		return color.New(color.FgMagenta, color.Bold)
	case SevError:
		return color.New(color.FgRed, color.Bold)
	case SevWarning:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgCyan)
}

// Pretty writes diagnostics in a human-readable form:
//
//	<path>:<line>:<col>: <sev> [<ID>]: <message>
//
// The caller is expected to have sorted the items.
func Pretty(w io.Writer, items []Diagnostic, opts PrettyOpts) {
	faint := color.New(color.Faint)
	for _, d := range items {
		sev := severityColor(d.Severity)
		if opts.Color {
			sev.EnableColor()
			faint.EnableColor()
		} else {
			sev.DisableColor()
			faint.DisableColor()
		}
		loc := "<unknown>"
		if d.Pos.IsValid() {
			loc = d.Pos.String()
		}
		fmt.Fprintf(w, "%s: %s [%s]: %s\n", loc, sev.Sprint(d.Severity), d.Code.ID(), d.Message)
		if opts.ShowTitle {
			fmt.Fprintf(w, "  %s\n", faint.Sprint(d.Code.Title()))
		}
	}
}

// FormatShort renders one uncolored line per diagnostic, suitable for
// golden files:
//
//	<sev> <ID> <path>:<line>:<col> <message>
func FormatShort(items []Diagnostic) string {
	var b strings.Builder
	for i, d := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code.ID(), d.Pos, d.Message)
	}
	return b.String()
}

// ColorEnabled resolves a --color mode ("auto", "on", "off") for f.
func ColorEnabled(mode string, f *os.File) (bool, error) {
	switch mode {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return f != nil && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("invalid color mode %q (want auto, on or off)", mode)
}
