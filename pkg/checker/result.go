// Package checker walks a running web application through the smoke plan:
// sidebar, menu entries, the submenu flow, then each configured route.
package checker

import (
	"time"

	"github.com/entrhq/scout/pkg/browser"
)

// Status classifies a single check result.
type Status string

const (
	// StatusOK marks an expectation that held.
	StatusOK Status = "ok"

	// StatusInfo marks a neutral observation (counts, headers).
	StatusInfo Status = "info"

	// StatusWarn marks a reportable oddity that is not a hard miss, such as
	// a visible but empty submenu or error banners on a page.
	StatusWarn Status = "warn"

	// StatusFail marks an expected UI marker that was absent. Absence is a
	// normal, reportable outcome; the run always continues.
	StatusFail Status = "fail"

	// StatusError marks an unexpected driver-level failure. At most one of
	// these appears per run; it ends the check sequence but never aborts
	// cleanup or the completion marker.
	StatusError Status = "error"
)

// Result is the outcome of one check: a status, the scope it was checked
// under, a one-line message, and optional indented detail lines.
type Result struct {
	Status  Status   `json:"status"`
	Scope   string   `json:"scope"`
	Message string   `json:"message"`
	Detail  []string `json:"detail,omitempty"`
}

// MenuReport records the outcome of a single menu entry query.
type MenuReport struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Found bool   `json:"found"`
}

// SubmenuReport records the outcome of the submenu flow, which runs exactly
// once, for the designated trigger entry only.
type SubmenuReport struct {
	Triggered bool `json:"triggered"`
	Visible   bool `json:"visible"`
	ItemCount int  `json:"item_count"`
	Empty     bool `json:"empty"`
}

// RouteReport records the outcome of one route visit.
type RouteReport struct {
	Path             string                `json:"path"`
	Name             string                `json:"name"`
	Title            string                `json:"title,omitempty"`
	TitleFound       bool                  `json:"title_found"`
	InteractiveCount int                   `json:"interactive_count"`
	Elements         []browser.ElementInfo `json:"elements,omitempty"`
	Errors           []string              `json:"errors,omitempty"`
	Snapshot         string                `json:"snapshot,omitempty"`
}

// Summary aggregates everything a run produced. It backs both the console
// report and the JSON/Markdown artifacts.
type Summary struct {
	RunID     string        `json:"run_id"`
	BaseURL   string        `json:"base_url"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	SidebarVisible bool           `json:"sidebar_visible"`
	Menus          []MenuReport   `json:"menus"`
	Submenu        *SubmenuReport `json:"submenu,omitempty"`
	Routes         []RouteReport  `json:"routes"`

	Results []Result `json:"results"`

	// Failure holds the detail text of the unexpected failure, if one
	// occurred.
	Failure string `json:"failure,omitempty"`
}

// Counts tallies results by status.
type Counts struct {
	OK   int `json:"ok"`
	Warn int `json:"warn"`
	Fail int `json:"fail"`
}

// Counts returns the per-status tallies for the run.
func (s *Summary) Counts() Counts {
	var c Counts
	for _, r := range s.Results {
		switch r.Status {
		case StatusOK:
			c.OK++
		case StatusWarn:
			c.Warn++
		case StatusFail:
			c.Fail++
		}
	}
	return c
}
