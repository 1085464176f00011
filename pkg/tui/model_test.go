package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/scout/pkg/checker"
	"github.com/entrhq/scout/pkg/report"
)

func TestModelCollectsResults(t *testing.T) {
	m := New("http://localhost:3000")

	updated, _ := m.Update(ResultMsg{Status: checker.StatusOK, Scope: "sidebar", Message: "sidebar is visible"})
	model := updated.(Model)
	updated, _ = model.Update(ResultMsg{
		Status:  checker.StatusWarn,
		Scope:   "route:/projects",
		Message: "error messages found: 1",
		Detail:  []string{"boom"},
	})
	model = updated.(Model)

	view := model.View()
	if !strings.Contains(view, "scout - http://localhost:3000") {
		t.Errorf("view missing header:\n%s", view)
	}
	if !strings.Contains(view, "sidebar is visible") {
		t.Errorf("view missing result line:\n%s", view)
	}
	if !strings.Contains(view, "boom") {
		t.Errorf("view missing detail line:\n%s", view)
	}
	if !strings.Contains(view, "running checks") {
		t.Errorf("view should show progress while not done:\n%s", view)
	}
}

func TestModelQuitsOnDone(t *testing.T) {
	m := New("http://localhost:3000")

	sum := &checker.Summary{Duration: 2 * time.Second}
	updated, cmd := m.Update(DoneMsg{Summary: sum})
	model := updated.(Model)

	if cmd == nil {
		t.Fatal("done must produce a quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("expected quit, got %T", msg)
	}

	if !model.Done() {
		t.Error("model must report done after the run finishes")
	}

	view := model.View()
	if !strings.Contains(view, report.CompletionMarker) {
		t.Errorf("final view missing completion marker:\n%s", view)
	}
	if strings.Contains(view, "running checks") {
		t.Errorf("final view should not show progress:\n%s", view)
	}
}

func TestModelQuitsOnKey(t *testing.T) {
	m := New("http://localhost:3000")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q must produce a quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("expected quit, got %T", msg)
	}

	// quitting early is not completion: the caller still owes the summary
	// and completion marker on stdout
	model := updated.(Model)
	if model.Done() {
		t.Error("quitting the view must not mark the run as done")
	}
	if strings.Contains(model.View(), report.CompletionMarker) {
		t.Errorf("interrupted view must not claim completion:\n%s", model.View())
	}
}
