package checker

import (
	"time"

	"github.com/entrhq/scout/pkg/browser"
)

// PageInspector is the slice of the browser session the checker needs.
// *browser.Session satisfies it; tests use a fake.
type PageInspector interface {
	// Navigate loads a URL, honoring the wait-until state in opts.
	Navigate(url string, opts browser.NavigateOptions) error

	// Settle pauses for a fixed duration after load.
	Settle(d time.Duration)

	// WaitVisible polls until the selector's first match is visible or the
	// timeout elapses. Timeout is reported as false, not as an error.
	WaitVisible(selector string, timeout time.Duration) (bool, error)

	// IsVisible reports current visibility of the selector's first match.
	IsVisible(selector string) (bool, error)

	// Click clicks the selector's first match.
	Click(selector string) error

	// Count returns the number of matches for the selector.
	Count(selector string) (int, error)

	// FirstText returns the trimmed text of the first visible match.
	FirstText(selector string) (text string, found bool, err error)

	// Elements describes up to max matches for the selector.
	Elements(selector string, max int) ([]browser.ElementInfo, error)

	// Texts returns trimmed non-empty texts of up to max matches.
	Texts(selector string, max int) ([]string, error)

	// HTML returns the serialized page HTML for snapshots.
	HTML() (string, error)
}
