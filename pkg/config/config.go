package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for a smoke-check run.
type Config struct {
	// Base URL of the application under test
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Browser settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Timing settings
	Timing TimingConfig `yaml:"timing" json:"timing"`

	// Sidebar menu plan
	Menus []MenuEntry `yaml:"menus" json:"menus"`

	// SubmenuTrigger is the ID of the single menu entry whose click should
	// reveal the submenu
	SubmenuTrigger string `yaml:"submenu_trigger" json:"submenu_trigger"`

	// Routes to visit after the sidebar checks
	Routes []Route `yaml:"routes" json:"routes"`

	// Selectors for the UI contract expected of the application
	Selectors SelectorConfig `yaml:"selectors" json:"selectors"`

	// Limits on per-route reporting
	Limits LimitConfig `yaml:"limits" json:"limits"`

	// Artifacts configuration
	Artifacts ArtifactConfig `yaml:"artifacts" json:"artifacts"`
}

// BrowserConfig defines how the browser session is launched.
type BrowserConfig struct {
	Headless bool `yaml:"headless" json:"headless"`

	// SlowMo delays each driver operation so a headed run is watchable
	SlowMo time.Duration `yaml:"slow_mo" json:"slow_mo"`

	ViewportWidth  int `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height" json:"viewport_height"`
}

// TimingConfig defines waits and timeouts. The defaults were tuned against a
// local dev server.
type TimingConfig struct {
	// Settle is a fixed pause after network idle for client-side rendering
	// that triggers no requests
	Settle time.Duration `yaml:"settle" json:"settle"`

	// NavTimeout bounds each navigation
	NavTimeout time.Duration `yaml:"nav_timeout" json:"nav_timeout"`

	// WaitTimeout bounds readiness polling for a selector (submenu reveal)
	WaitTimeout time.Duration `yaml:"wait_timeout" json:"wait_timeout"`
}

// UnmarshalYAML decodes browser settings, accepting "500ms" style duration
// strings for slow_mo. Absent fields keep their current (default) values.
func (b *BrowserConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Headless       *bool   `yaml:"headless"`
		SlowMo         *string `yaml:"slow_mo"`
		ViewportWidth  *int    `yaml:"viewport_width"`
		ViewportHeight *int    `yaml:"viewport_height"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Headless != nil {
		b.Headless = *raw.Headless
	}
	if raw.SlowMo != nil {
		d, err := time.ParseDuration(*raw.SlowMo)
		if err != nil {
			return fmt.Errorf("invalid slow_mo: %w", err)
		}
		b.SlowMo = d
	}
	if raw.ViewportWidth != nil {
		b.ViewportWidth = *raw.ViewportWidth
	}
	if raw.ViewportHeight != nil {
		b.ViewportHeight = *raw.ViewportHeight
	}
	return nil
}

// UnmarshalYAML decodes timing settings from "1s" style duration strings.
// Absent fields keep their current (default) values.
func (t *TimingConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Settle      *string `yaml:"settle"`
		NavTimeout  *string `yaml:"nav_timeout"`
		WaitTimeout *string `yaml:"wait_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	set := func(dst *time.Duration, field string, src *string) error {
		if src == nil {
			return nil
		}
		d, err := time.ParseDuration(*src)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field, err)
		}
		*dst = d
		return nil
	}

	if err := set(&t.Settle, "settle", raw.Settle); err != nil {
		return err
	}
	if err := set(&t.NavTimeout, "nav_timeout", raw.NavTimeout); err != nil {
		return err
	}
	return set(&t.WaitTimeout, "wait_timeout", raw.WaitTimeout)
}

// MenuEntry is one sidebar menu item: its data-testid suffix and the
// human-readable name used in diagnostics.
type MenuEntry struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Route is one application route to check.
type Route struct {
	Path string `yaml:"path" json:"path"`
	Name string `yaml:"name" json:"name"`
}

// SelectorConfig holds the selectors the application is expected to satisfy.
type SelectorConfig struct {
	Sidebar      string `yaml:"sidebar" json:"sidebar"`
	MenuPrefix   string `yaml:"menu_prefix" json:"menu_prefix"`
	Submenu      string `yaml:"submenu" json:"submenu"`
	SubmenuItems string `yaml:"submenu_items" json:"submenu_items"`
	Interactive  string `yaml:"interactive" json:"interactive"`
	Errors       string `yaml:"errors" json:"errors"`
}

// LimitConfig bounds per-route reporting.
type LimitConfig struct {
	MaxElements int `yaml:"max_elements" json:"max_elements"`
	MaxErrors   int `yaml:"max_errors" json:"max_errors"`
	LabelLength int `yaml:"label_length" json:"label_length"`
}

// ArtifactConfig defines report artifact generation.
type ArtifactConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	Snapshots bool   `yaml:"snapshots" json:"snapshots"`
}

// DefaultConfig returns the configuration matching the local environment
// this tool was originally written against.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:3000",
		Browser: BrowserConfig{
			Headless:       false,
			SlowMo:         500 * time.Millisecond,
			ViewportWidth:  1280,
			ViewportHeight: 720,
		},
		Timing: TimingConfig{
			Settle:      1 * time.Second,
			NavTimeout:  10 * time.Second,
			WaitTimeout: 5 * time.Second,
		},
		Menus: []MenuEntry{
			{ID: "home", Label: "Home"},
			{ID: "calendar", Label: "Schedule"},
			{ID: "projects", Label: "Projects"},
			{ID: "planning", Label: "Video Planning"},
			{ID: "feedback", Label: "Video Feedback"},
		},
		SubmenuTrigger: "projects",
		Routes: []Route{
			{Path: "/dashboard", Name: "Dashboard"},
			{Path: "/projects", Name: "Projects"},
			{Path: "/calendar", Name: "Calendar"},
			{Path: "/planning", Name: "Video Planning"},
			{Path: "/feedback", Name: "Video Feedback"},
		},
		Selectors: SelectorConfig{
			Sidebar:      `[data-testid="sidebar"]`,
			MenuPrefix:   "menu-",
			Submenu:      `[data-testid="sidebar-submenu"]`,
			SubmenuItems: `[data-testid*="menu-item-"]`,
			Interactive:  `button, input, select, textarea, [role="button"]`,
			Errors:       `.error, [role="alert"], .text-red-500, .text-red-600`,
		},
		Limits: LimitConfig{
			MaxElements: 5,
			MaxErrors:   3,
			LabelLength: 30,
		},
		Artifacts: ArtifactConfig{
			Enabled:   false,
			OutputDir: "scout-results",
		},
	}
}

// LoadFromFile loads configuration from a YAML file, applied on top of the
// defaults so a partial file only overrides what it names.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// MenuSelector returns the selector for a menu entry by ID.
func (c *Config) MenuSelector(id string) string {
	return fmt.Sprintf(`[data-testid=%q]`, c.Selectors.MenuPrefix+id)
}

// FilterRoutes narrows the route plan to paths or names matching the glob
// pattern. An empty pattern keeps the full plan.
func (c *Config) FilterRoutes(pattern string) error {
	if pattern == "" {
		return nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}

	var kept []Route
	for _, route := range c.Routes {
		if g.Match(route.Path) || g.Match(route.Name) {
			kept = append(kept, route)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("route pattern %q matches no configured routes", pattern)
	}

	c.Routes = kept
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}

	if c.Browser.ViewportWidth < 100 || c.Browser.ViewportWidth > 10000 {
		return fmt.Errorf("viewport width must be between 100 and 10000, got %d", c.Browser.ViewportWidth)
	}
	if c.Browser.ViewportHeight < 100 || c.Browser.ViewportHeight > 10000 {
		return fmt.Errorf("viewport height must be between 100 and 10000, got %d", c.Browser.ViewportHeight)
	}

	if len(c.Menus) == 0 {
		return fmt.Errorf("at least one menu entry is required")
	}
	if c.SubmenuTrigger != "" {
		found := false
		for _, m := range c.Menus {
			if m.ID == c.SubmenuTrigger {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("submenu trigger %q is not a configured menu entry", c.SubmenuTrigger)
		}
	}

	if len(c.Routes) == 0 {
		return fmt.Errorf("at least one route is required")
	}

	if c.Limits.MaxElements <= 0 {
		return fmt.Errorf("max elements must be positive, got %d", c.Limits.MaxElements)
	}
	if c.Limits.MaxErrors <= 0 {
		return fmt.Errorf("max errors must be positive, got %d", c.Limits.MaxErrors)
	}
	if c.Limits.LabelLength <= 0 {
		return fmt.Errorf("label length must be positive, got %d", c.Limits.LabelLength)
	}

	if c.Artifacts.Enabled && c.Artifacts.OutputDir == "" {
		return fmt.Errorf("artifact output directory is required when artifacts are enabled")
	}

	return nil
}
