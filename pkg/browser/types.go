package browser

import (
	"github.com/playwright-community/playwright-go"
)

// Session represents an active browser session with its associated resources.
// A session owns exactly one browser, context, and page; Close releases all
// three and must be called exactly once by the owner.
type Session struct {
	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	closed bool
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// SlowMo inserts a delay between driver operations, in milliseconds.
	// Useful for watching a headed run; zero disables it.
	SlowMo float64

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// ElementInfo describes one interactive element on the page: its lowercase
// tag name and a short human-readable label.
type ElementInfo struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// Default values for session operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)
