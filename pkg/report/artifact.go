package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/scout/pkg/checker"
)

// ArtifactWriter writes run artifacts into an output directory.
type ArtifactWriter struct {
	outputDir string
}

// NewArtifactWriter creates a new artifact writer.
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{outputDir: outputDir}
}

// WriteAll writes the JSON report and the Markdown summary.
func (w *ArtifactWriter) WriteAll(sum *checker.Summary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.writeJSON(sum); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}

	if err := w.writeMarkdown(sum); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}

	return nil
}

// writeJSON writes the full summary as smoke.json.
func (w *ArtifactWriter) writeJSON(sum *checker.Summary) error {
	path := filepath.Join(w.outputDir, "smoke.json")

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// writeMarkdown writes a human-readable summary.md.
func (w *ArtifactWriter) writeMarkdown(sum *checker.Summary) error {
	path := filepath.Join(w.outputDir, "summary.md")

	counts := sum.Counts()

	var md strings.Builder
	md.WriteString("# Smoke Check Summary\n\n")
	md.WriteString(fmt.Sprintf("**Target:** %s\n\n", sum.BaseURL))
	md.WriteString(fmt.Sprintf("**Run:** %s\n\n", sum.RunID))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", sum.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", sum.Duration.Round(time.Millisecond)))
	md.WriteString(fmt.Sprintf("**Checks:** %d ok, %d warnings, %d failed\n\n", counts.OK, counts.Warn, counts.Fail))

	if sum.Failure != "" {
		md.WriteString("## Unexpected Failure\n\n")
		md.WriteString(fmt.Sprintf("```\n%s\n```\n\n", sum.Failure))
	}

	md.WriteString("## Sidebar\n\n")
	if sum.SidebarVisible {
		md.WriteString("Sidebar visible.\n\n")
		md.WriteString("| Menu | Found |\n|------|-------|\n")
		for _, m := range sum.Menus {
			md.WriteString(fmt.Sprintf("| %s | %v |\n", m.Label, m.Found))
		}
		md.WriteString("\n")
	} else {
		md.WriteString("Sidebar not visible.\n\n")
	}

	if sum.Submenu != nil {
		md.WriteString("## Submenu\n\n")
		if sum.Submenu.Visible {
			md.WriteString(fmt.Sprintf("Visible with %d items", sum.Submenu.ItemCount))
			if sum.Submenu.Empty {
				md.WriteString(" (empty)")
			}
			md.WriteString(".\n\n")
		} else {
			md.WriteString("Not visible after clicking the trigger entry.\n\n")
		}
	}

	if len(sum.Routes) > 0 {
		md.WriteString("## Routes\n\n")
		md.WriteString("| Route | Title | Interactive | Errors |\n")
		md.WriteString("|-------|-------|-------------|--------|\n")
		for _, r := range sum.Routes {
			title := r.Title
			if !r.TitleFound {
				title = "(none)"
			}
			md.WriteString(fmt.Sprintf("| %s | %s | %d | %d |\n",
				r.Path, title, r.InteractiveCount, len(r.Errors)))
		}
		md.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(md.String()), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
