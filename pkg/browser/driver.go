package browser

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"
)

// Driver owns the Playwright instance and creates browser sessions from it.
type Driver struct {
	playwright  *playwright.Playwright
	initialized bool
}

// NewDriver creates a new, uninitialized driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Start installs the Playwright driver if needed and launches it.
// This must be called before creating any sessions.
func (d *Driver) Start() error {
	if d.initialized {
		return nil
	}

	// Install and run Playwright with output discarded so driver chatter
	// does not interleave with check diagnostics on the console.
	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	d.playwright = pw
	d.initialized = true
	return nil
}

// NewSession launches a Chromium browser and returns a session bound to a
// fresh context and page.
func (d *Driver) NewSession(opts SessionOptions) (*Session, error) {
	if !d.initialized {
		return nil, fmt.Errorf("driver not started")
	}

	// Set defaults
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	// Launch browser
	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(opts.SlowMo)
	}
	browser, err := d.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// Create context
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	// Create page
	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(opts.Timeout)

	return &Session{
		Browser: browser,
		Context: context,
		Page:    page,
	}, nil
}

// Stop shuts down the Playwright instance. Sessions should be closed first.
func (d *Driver) Stop() error {
	if !d.initialized {
		return nil
	}
	d.initialized = false
	if err := d.playwright.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

// Close closes the session's page, context, and browser. Individual close
// errors are ignored so cleanup always runs to completion. Safe to call more
// than once; only the first call does anything.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	_ = s.Page.Close()    // Ignore errors, continue cleanup
	_ = s.Context.Close() // Ignore errors, continue cleanup
	_ = s.Browser.Close() // Ignore errors, continue cleanup
}
