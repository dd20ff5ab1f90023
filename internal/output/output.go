// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Writer handles CLI output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables or disables verbose mode.
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// Verbose reports whether verbose mode is enabled.
func (w *Writer) Verbose() bool {
	return w.verbose
}

// render applies a style only when color output is enabled.
func (w *Writer) render(style lipgloss.Style, s string) string {
	if !w.color {
		return s
	}
	return style.Render(s)
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Debug prints a message only in verbose mode.
func (w *Writer) Debug(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.render(DimStyle, msg))
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.render(SuccessStyle, msg))
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Errorln("%s", w.render(WarnStyle, "warning: "+msg))
}

// ErrorPrefix prints an error message with suitegen prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s %s", ErrStyle.Render("suitegen:"), msg)
	} else {
		w.Errorln("suitegen: %s", msg)
	}
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.render(DimStyle, msg))
}

// Action prints an action message (what the CLI is doing).
func (w *Writer) Action(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.render(AccentStyle, msg))
}

// Step prints a numbered step message.
func (w *Writer) Step(num int, format string, args ...interface{}) {
	if w.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s %s", AccentStyle.Render(fmt.Sprintf("%d.", num)), msg)
	} else {
		w.Println("%d. %s", num, msg)
	}
}

// FileCreated prints a per-file progress line (skipped in quiet mode).
func (w *Writer) FileCreated(path string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("  %s %s", SuccessStyle.Render("+"), path)
	} else {
		w.Println("  + %s", path)
	}
}

// PhaseHeader prints a compile phase header in verbose mode.
func (w *Writer) PhaseHeader(phase string) {
	if !w.verbose {
		return
	}
	w.Println("")
	w.Println("%s", w.render(HeaderStyle, "=== "+phase+" ==="))
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	w.Println("%s", w.render(SectionStyle, "=== "+title+" ==="))
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// ProblemList prints validation problems to stderr.
func (w *Writer) ProblemList(items []string) {
	for _, item := range items {
		if w.color {
			w.Errorln("  %s %s", ErrStyle.Render("x"), item)
		} else {
			w.Errorln("  x %s", item)
		}
	}
}

// ValidationSuccess prints a validation success message.
func (w *Writer) ValidationSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s %s", SuccessStyle.Render("✓"), msg)
	} else {
		w.Println("%s", msg)
	}
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	w.Println("%s", w.render(HeaderStyle, "=== "+title+" ==="))
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("  %s %s", DimStyle.Render(label+":"), value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// Table prints left-aligned columns sized to their widest cell. The
// header and separator rows are dimmed when color is enabled; cell
// content is printed verbatim, never interpreted as a format string.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		return strings.Join(parts, "  ")
	}

	w.Println("%s", w.render(DimStyle, line(headers)))
	seps := make([]string, len(widths))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	w.Println("%s", w.render(DimStyle, strings.Join(seps, "  ")))
	for _, row := range rows {
		w.Println("%s", line(row))
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
