package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	// Build Playwright navigation options
	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, playwrightOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Settle pauses for a fixed duration to let client-side rendering that
// triggers no network activity catch up. Kept deliberately short; readiness
// should come from WaitVisible wherever a concrete selector exists.
func (s *Session) Settle(d time.Duration) {
	if d <= 0 {
		return
	}
	s.Page.WaitForTimeout(float64(d.Milliseconds()))
}

// WaitVisible polls until the first element matching the selector is visible
// or the timeout elapses. A timeout is a normal outcome, reported as false;
// only a driver-level failure is returned as an error.
func (s *Session) WaitVisible(selector string, timeout time.Duration) (bool, error) {
	loc := s.Page.Locator(selector).First()

	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err == nil {
		return true, nil
	}

	// The wait failing usually just means the element never showed up.
	// Confirm with a direct visibility probe before treating it as a
	// driver failure.
	visible, visErr := loc.IsVisible()
	if visErr != nil {
		return false, fmt.Errorf("visibility probe failed for %q: %w", selector, visErr)
	}
	return visible, nil
}

// IsVisible reports whether the first element matching the selector is
// currently visible. A missing element is visible=false, not an error.
func (s *Session) IsVisible(selector string) (bool, error) {
	visible, err := s.Page.Locator(selector).First().IsVisible()
	if err != nil {
		return false, fmt.Errorf("visibility check failed for %q: %w", selector, err)
	}
	return visible, nil
}

// Click clicks the first element matching the selector.
func (s *Session) Click(selector string) error {
	if err := s.Page.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("click failed for %q: %w", selector, err)
	}
	return nil
}

// Count returns the number of elements matching the selector.
func (s *Session) Count(selector string) (int, error) {
	count, err := s.Page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("count failed for %q: %w", selector, err)
	}
	return count, nil
}

// HTML returns the full serialized HTML of the current page.
func (s *Session) HTML() (string, error) {
	content, err := s.Page.Content()
	if err != nil {
		return "", fmt.Errorf("content extraction failed: %w", err)
	}
	return content, nil
}
