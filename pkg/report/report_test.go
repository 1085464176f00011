package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/entrhq/scout/pkg/checker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *checker.Summary {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &checker.Summary{
		RunID:     "run-123",
		BaseURL:   "http://localhost:3000",
		StartTime: start,
		EndTime:   start.Add(4 * time.Second),
		Duration:  4 * time.Second,

		SidebarVisible: true,
		Menus: []checker.MenuReport{
			{ID: "home", Label: "Home", Found: true},
			{ID: "projects", Label: "Projects", Found: true},
		},
		Submenu: &checker.SubmenuReport{Triggered: true, Visible: true, ItemCount: 3},
		Routes: []checker.RouteReport{
			{Path: "/dashboard", Name: "Dashboard", Title: "Dashboard", TitleFound: true, InteractiveCount: 4},
			{Path: "/projects", Name: "Projects", TitleFound: false, InteractiveCount: 0},
		},
		Results: []checker.Result{
			{Status: checker.StatusOK, Scope: "sidebar", Message: "sidebar is visible"},
			{Status: checker.StatusInfo, Scope: "route:/dashboard", Message: "checking Dashboard page"},
			{Status: checker.StatusFail, Scope: "route:/projects", Message: "no interactive elements on page"},
			{Status: checker.StatusWarn, Scope: "route:/projects", Message: "error messages found: 2", Detail: []string{"boom", "crash"}},
		},
	}
}

func TestConsoleWriterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf, false)

	sum := sampleSummary()
	for _, res := range sum.Results {
		w.Write(res)
	}
	w.WriteSummary(sum)

	out := buf.String()
	assert.Contains(t, out, "✓ sidebar is visible")
	assert.Contains(t, out, "✗ no interactive elements on page")
	assert.Contains(t, out, "⚠ error messages found: 2")
	assert.Contains(t, out, "  - boom")
	assert.Contains(t, out, "  - crash")
	assert.Contains(t, out, "checks: 1 ok, 1 warnings, 1 failed")
	assert.True(t, strings.HasSuffix(out, CompletionMarker+"\n"), "completion marker must be the last line")
}

func TestConsoleWriterCompletionOnlyPath(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(&buf, false)
	w.WriteCompletion()

	assert.True(t, strings.HasSuffix(buf.String(), CompletionMarker+"\n"))
}

func TestTextReport(t *testing.T) {
	text := Text(sampleSummary())

	assert.Contains(t, text, "smoke check against http://localhost:3000")
	assert.Contains(t, text, "✓ sidebar is visible")
	assert.Contains(t, text, "  - boom")
	assert.True(t, strings.HasSuffix(text, CompletionMarker+"\n"))
}

func TestTextReportWithFailure(t *testing.T) {
	sum := sampleSummary()
	sum.Failure = "net::ERR_CONNECTION_REFUSED"

	text := Text(sum)
	assert.Contains(t, text, "run ended early: net::ERR_CONNECTION_REFUSED")
	assert.True(t, strings.HasSuffix(text, CompletionMarker+"\n"))
}

func TestArtifactWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewArtifactWriter(filepath.Join(dir, "results"))

	sum := sampleSummary()
	require.NoError(t, w.WriteAll(sum))

	// JSON round-trips to the same summary shape
	data, err := os.ReadFile(filepath.Join(dir, "results", "smoke.json"))
	require.NoError(t, err)

	var decoded checker.Summary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sum.RunID, decoded.RunID)
	assert.Equal(t, sum.BaseURL, decoded.BaseURL)
	assert.Len(t, decoded.Results, len(sum.Results))
	require.NotNil(t, decoded.Submenu)
	assert.Equal(t, 3, decoded.Submenu.ItemCount)

	// Markdown carries the headline facts
	md, err := os.ReadFile(filepath.Join(dir, "results", "summary.md"))
	require.NoError(t, err)
	text := string(md)
	assert.Contains(t, text, "# Smoke Check Summary")
	assert.Contains(t, text, "http://localhost:3000")
	assert.Contains(t, text, "| /dashboard | Dashboard | 4 | 0 |")
	assert.Contains(t, text, "| /projects | (none) | 0 | 0 |")
}

func TestStyledLineGlyphs(t *testing.T) {
	tests := []struct {
		status checker.Status
		glyph  string
	}{
		{checker.StatusOK, "✓"},
		{checker.StatusInfo, "-"},
		{checker.StatusWarn, "⚠"},
		{checker.StatusFail, "✗"},
		{checker.StatusError, "✗"},
	}

	for _, tt := range tests {
		line := StyledLine(checker.Result{Status: tt.status, Message: "msg"}, false)
		assert.Equal(t, tt.glyph+" msg", line)
	}
}
