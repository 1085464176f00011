package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/entrhq/scout/pkg/checker"
)

// Text renders the whole run as a plain, unstyled report. Used for the
// clipboard export and anywhere colors are not wanted.
func Text(sum *checker.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "smoke check against %s (run %s)\n\n", sum.BaseURL, sum.RunID)

	for _, res := range sum.Results {
		glyph, _ := glyphFor(res.Status)
		fmt.Fprintf(&b, "%s %s\n", glyph, res.Message)
		for _, detail := range res.Detail {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
	}

	counts := sum.Counts()
	fmt.Fprintf(&b, "\nchecks: %d ok, %d warnings, %d failed (%s)\n",
		counts.OK, counts.Warn, counts.Fail, sum.Duration.Round(time.Millisecond))
	if sum.Failure != "" {
		fmt.Fprintf(&b, "run ended early: %s\n", sum.Failure)
	}
	b.WriteString(CompletionMarker + "\n")

	return b.String()
}

// CopyToClipboard places the plain-text report on the system clipboard.
func CopyToClipboard(sum *checker.Summary) error {
	if err := clipboard.WriteAll(Text(sum)); err != nil {
		return fmt.Errorf("failed to copy report to clipboard: %w", err)
	}
	return nil
}
