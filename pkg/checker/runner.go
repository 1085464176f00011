package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/scout/pkg/browser"
	"github.com/entrhq/scout/pkg/config"
	"github.com/entrhq/scout/pkg/logging"
	"github.com/entrhq/scout/pkg/snapshot"
)

// Runner executes the smoke plan against a page inspector, producing one
// Result per check. Results stream through the emit callback as they happen
// and accumulate on the Summary.
//
// The runner never aborts on a missing or invisible element; absence is a
// reported outcome. An unexpected driver failure produces a single
// StatusError result, ends the sequence, and leaves cleanup to the caller.
type Runner struct {
	cfg  *config.Config
	log  *logging.Logger
	emit func(Result)
}

// NewRunner creates a runner. log and emit may each be nil: results are
// always collected on the summary regardless of streaming or logging.
func NewRunner(cfg *config.Config, log *logging.Logger, emit func(Result)) *Runner {
	return &Runner{cfg: cfg, log: log, emit: emit}
}

// Run drives the full check sequence: root navigation, sidebar, menu
// entries, the submenu flow for the trigger entry, then every configured
// route. The caller owns the session and must close it exactly once
// afterwards, on every path.
func (r *Runner) Run(ctx context.Context, insp PageInspector) *Summary {
	sum := &Summary{
		RunID:     logging.GetRunID(),
		BaseURL:   r.cfg.BaseURL,
		StartTime: time.Now(),
	}
	defer func() {
		sum.EndTime = time.Now()
		sum.Duration = sum.EndTime.Sub(sum.StartTime)
	}()

	if err := r.checkSidebar(ctx, insp, sum); err != nil {
		r.unexpected(sum, "sidebar", err)
		return sum
	}

	if err := r.checkRoutes(ctx, insp, sum); err != nil {
		r.unexpected(sum, "routes", err)
		return sum
	}

	return sum
}

// checkSidebar loads the application root and walks the sidebar plan: the
// container, each menu entry in order, and the submenu flow for the trigger.
func (r *Runner) checkSidebar(ctx context.Context, insp PageInspector, sum *Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := insp.Navigate(r.cfg.BaseURL, browser.NavigateOptions{
		WaitUntil: "networkidle",
		Timeout:   float64(r.cfg.Timing.NavTimeout.Milliseconds()),
	})
	if err != nil {
		return err
	}
	r.record(sum, Result{Status: StatusOK, Scope: "root", Message: "page loaded"})

	visible, err := insp.IsVisible(r.cfg.Selectors.Sidebar)
	if err != nil {
		return err
	}
	sum.SidebarVisible = visible
	if !visible {
		r.record(sum, Result{Status: StatusFail, Scope: "sidebar", Message: "sidebar is not visible"})
		return nil
	}
	r.record(sum, Result{Status: StatusOK, Scope: "sidebar", Message: "sidebar is visible"})

	for _, menu := range r.cfg.Menus {
		if err := ctx.Err(); err != nil {
			return err
		}

		found, err := insp.IsVisible(r.cfg.MenuSelector(menu.ID))
		if err != nil {
			return err
		}
		sum.Menus = append(sum.Menus, MenuReport{ID: menu.ID, Label: menu.Label, Found: found})

		scope := "menu:" + menu.ID
		if !found {
			r.record(sum, Result{Status: StatusFail, Scope: scope, Message: fmt.Sprintf("%s menu not found", menu.Label)})
			continue
		}
		r.record(sum, Result{Status: StatusOK, Scope: scope, Message: fmt.Sprintf("%s menu found", menu.Label)})

		if menu.ID == r.cfg.SubmenuTrigger {
			if err := r.checkSubmenu(insp, sum, menu); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkSubmenu runs the submenu flow: click the trigger entry, poll for the
// submenu container to become visible, and count its nested items. Runs at
// most once per run, right after the trigger entry's own query.
func (r *Runner) checkSubmenu(insp PageInspector, sum *Summary, menu config.MenuEntry) error {
	scope := "submenu"
	report := &SubmenuReport{Triggered: true}
	sum.Submenu = report

	r.record(sum, Result{Status: StatusInfo, Scope: scope, Message: fmt.Sprintf("clicking %s menu to reveal submenu", menu.Label)})

	if err := insp.Click(r.cfg.MenuSelector(menu.ID)); err != nil {
		return err
	}

	visible, err := insp.WaitVisible(r.cfg.Selectors.Submenu, r.cfg.Timing.WaitTimeout)
	if err != nil {
		return err
	}
	report.Visible = visible
	if !visible {
		r.record(sum, Result{Status: StatusFail, Scope: scope, Message: "submenu is not visible"})
		return nil
	}
	r.record(sum, Result{Status: StatusOK, Scope: scope, Message: "submenu is visible"})

	// Scope the item count to the submenu container
	count, err := insp.Count(r.cfg.Selectors.Submenu + " " + r.cfg.Selectors.SubmenuItems)
	if err != nil {
		return err
	}
	report.ItemCount = count
	r.record(sum, Result{Status: StatusInfo, Scope: scope, Message: fmt.Sprintf("submenu items: %d", count)})

	if count == 0 {
		report.Empty = true
		r.record(sum, Result{Status: StatusWarn, Scope: scope, Message: "submenu is empty"})
	}

	return nil
}

// checkRoutes visits each configured route and reports its heading, its
// interactive elements, and any error banners.
func (r *Runner) checkRoutes(ctx context.Context, insp PageInspector, sum *Summary) error {
	for _, route := range r.cfg.Routes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.checkRoute(insp, sum, route); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) checkRoute(insp PageInspector, sum *Summary, route config.Route) error {
	scope := "route:" + route.Path
	report := RouteReport{Path: route.Path, Name: route.Name}

	r.record(sum, Result{Status: StatusInfo, Scope: scope, Message: fmt.Sprintf("checking %s page", route.Name)})

	err := insp.Navigate(r.cfg.BaseURL+route.Path, browser.NavigateOptions{
		WaitUntil: "networkidle",
		Timeout:   float64(r.cfg.Timing.NavTimeout.Milliseconds()),
	})
	if err != nil {
		return err
	}
	insp.Settle(r.cfg.Timing.Settle)

	// Heading
	title, found, err := insp.FirstText("h1")
	if err != nil {
		return err
	}
	report.Title = title
	report.TitleFound = found
	if found {
		r.record(sum, Result{Status: StatusOK, Scope: scope, Message: fmt.Sprintf("page title: %s", title)})
	} else {
		r.record(sum, Result{Status: StatusFail, Scope: scope, Message: "page title not found"})
	}

	// Interactive elements
	count, err := insp.Count(r.cfg.Selectors.Interactive)
	if err != nil {
		return err
	}
	report.InteractiveCount = count
	r.record(sum, Result{Status: StatusInfo, Scope: scope, Message: fmt.Sprintf("interactive elements: %d", count)})

	if count == 0 {
		r.record(sum, Result{Status: StatusFail, Scope: scope, Message: "no interactive elements on page"})
	} else {
		infos, err := insp.Elements(r.cfg.Selectors.Interactive, r.cfg.Limits.MaxElements)
		if err != nil {
			return err
		}
		report.Elements = infos
		for _, info := range infos {
			label := browser.TruncateLabel(info.Label, r.cfg.Limits.LabelLength)
			r.record(sum, Result{Status: StatusOK, Scope: scope, Message: fmt.Sprintf("%s: %s", info.Tag, label)})
		}
	}

	// Error banners
	errCount, err := insp.Count(r.cfg.Selectors.Errors)
	if err != nil {
		return err
	}
	if errCount > 0 {
		texts, err := insp.Texts(r.cfg.Selectors.Errors, r.cfg.Limits.MaxErrors)
		if err != nil {
			return err
		}
		report.Errors = texts
		r.record(sum, Result{
			Status:  StatusWarn,
			Scope:   scope,
			Message: fmt.Sprintf("error messages found: %d", errCount),
			Detail:  texts,
		})
	}

	if r.cfg.Artifacts.Enabled && r.cfg.Artifacts.Snapshots {
		report.Snapshot = r.captureSnapshot(insp, scope)
	}

	sum.Routes = append(sum.Routes, report)
	return nil
}

// captureSnapshot attaches a cleaned HTML snapshot of the current page to
// the report. Snapshot failures are logged, never fatal.
func (r *Runner) captureSnapshot(insp PageInspector, scope string) string {
	raw, err := insp.HTML()
	if err != nil {
		r.logf("snapshot capture failed for %s: %v", scope, err)
		return ""
	}
	snap, err := snapshot.Clean(raw, snapshot.DefaultMaxLength)
	if err != nil {
		r.logf("snapshot cleaning failed for %s: %v", scope, err)
		return ""
	}
	return snap.HTML
}

// logf writes to the run log when one is attached.
func (r *Runner) logf(format string, v ...interface{}) {
	if r.log != nil {
		r.log.Warnf(format, v...)
	}
}

// record appends a result to the summary and streams it to the emitter.
func (r *Runner) record(sum *Summary, res Result) {
	sum.Results = append(sum.Results, res)
	if r.emit != nil {
		r.emit(res)
	}
}

// unexpected records the single driver-level failure for the run. Execution
// proceeds straight to the caller's cleanup; the failure is not retried and
// not re-raised.
func (r *Runner) unexpected(sum *Summary, scope string, err error) {
	sum.Failure = err.Error()
	if r.log != nil {
		r.log.Errorf("unexpected failure in %s: %v", scope, err)
	}
	r.record(sum, Result{
		Status:  StatusError,
		Scope:   scope,
		Message: fmt.Sprintf("unexpected failure: %v", err),
	})
}
