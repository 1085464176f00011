// Package tui provides an optional live view of a smoke run: a spinner while
// checks execute and a scrolling list of results as they stream in. The
// default mode remains plain sequential console output; this view is gated
// behind a flag.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/scout/pkg/checker"
	"github.com/entrhq/scout/pkg/report"
)

// ResultMsg carries one streamed check result into the model.
type ResultMsg checker.Result

// DoneMsg signals that the run finished, carrying the final summary.
type DoneMsg struct {
	Summary *checker.Summary
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Model is the live-run view state.
type Model struct {
	spinner spinner.Model
	target  string

	lines   []string
	done    bool
	summary *checker.Summary
}

// New creates a live-run model for the given target URL.
func New(target string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	return Model{
		spinner: sp,
		target:  target,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles streamed results, completion, and quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case ResultMsg:
		res := checker.Result(msg)
		m.lines = append(m.lines, report.StyledLine(res, true))
		for _, detail := range res.Detail {
			m.lines = append(m.lines, detailStyle.Render("  - "+detail))
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.summary = msg.Summary
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// Done reports whether the model saw the run finish. False when the user
// quit the view before the run completed; the caller still owes the summary
// and completion marker on stdout in that case.
func (m Model) Done() bool {
	return m.done
}

// View renders the header, the streamed lines, and either the spinner or the
// final tallies.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("scout - " + m.target))
	b.WriteString("\n\n")

	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done {
		if m.summary != nil {
			counts := m.summary.Counts()
			b.WriteString("\n")
			b.WriteString(summaryStyle.Render(fmt.Sprintf("checks: %d ok, %d warnings, %d failed (%s)",
				counts.OK, counts.Warn, counts.Fail, m.summary.Duration.Round(time.Millisecond))))
			b.WriteString("\n")
		}
		b.WriteString(report.CompletionMarker)
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" running checks... (q to quit)")
		b.WriteString("\n")
	}

	return b.String()
}
