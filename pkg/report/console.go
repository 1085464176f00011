// Package report renders smoke-check results: styled console lines while the
// run progresses, JSON and Markdown artifacts afterwards, and an optional
// clipboard export of the plain-text report.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/scout/pkg/checker"
)

// CompletionMarker is always the last line of a run's output, on every path.
const CompletionMarker = "smoke check complete"

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// ConsoleWriter prints one line per result as the run progresses.
type ConsoleWriter struct {
	out   io.Writer
	color bool

	lastScope string
}

// NewConsoleWriter creates a console writer. With color disabled the same
// lines are printed without styling.
func NewConsoleWriter(out io.Writer, color bool) *ConsoleWriter {
	return &ConsoleWriter{out: out, color: color}
}

// Write prints a single result line, with a blank separator whenever the
// check moves to a new route scope.
func (w *ConsoleWriter) Write(res checker.Result) {
	if w.lastScope != "" && res.Scope != w.lastScope && isRouteScope(res.Scope) {
		fmt.Fprintln(w.out)
	}
	w.lastScope = res.Scope

	fmt.Fprintln(w.out, w.renderLine(res))
	for _, detail := range res.Detail {
		fmt.Fprintf(w.out, "  - %s\n", detail)
	}
}

// WriteSummary prints the final tallies and the completion marker.
func (w *ConsoleWriter) WriteSummary(sum *checker.Summary) {
	counts := sum.Counts()

	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "checks: %d ok, %d warnings, %d failed (%s)\n",
		counts.OK, counts.Warn, counts.Fail, sum.Duration.Round(time.Millisecond))
	if sum.Failure != "" {
		fmt.Fprintln(w.out, w.style(errorStyle, "run ended early: "+sum.Failure))
	}
	fmt.Fprintln(w.out, CompletionMarker)
}

// WriteCompletion prints just the completion marker, for paths where no
// summary exists (setup failed before any check ran).
func (w *ConsoleWriter) WriteCompletion() {
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, CompletionMarker)
}

func (w *ConsoleWriter) renderLine(res checker.Result) string {
	return StyledLine(res, w.color)
}

func (w *ConsoleWriter) style(s lipgloss.Style, text string) string {
	if !w.color {
		return text
	}
	return s.Render(text)
}

// StyledLine renders a single result as "<glyph> <message>", styled when
// color is enabled. Shared by the console writer and the TUI.
func StyledLine(res checker.Result, color bool) string {
	glyph, style := glyphFor(res.Status)
	if color {
		glyph = style.Render(glyph)
	}
	return fmt.Sprintf("%s %s", glyph, res.Message)
}

func glyphFor(status checker.Status) (string, lipgloss.Style) {
	switch status {
	case checker.StatusOK:
		return "✓", okStyle
	case checker.StatusWarn:
		return "⚠", warnStyle
	case checker.StatusFail:
		return "✗", failStyle
	case checker.StatusError:
		return "✗", errorStyle
	default:
		return "-", infoStyle
	}
}

func isRouteScope(scope string) bool {
	return len(scope) > 6 && scope[:6] == "route:"
}
