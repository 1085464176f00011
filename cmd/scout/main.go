// Package main provides scout, a browser-driven UI smoke checker. It walks a
// running web application through a fixed plan of sidebar, submenu, and
// per-route checks and reports one diagnostic line per check. Missing UI is
// reported, never fatal; the process always finishes its cleanup and prints a
// completion marker.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/scout/pkg/browser"
	"github.com/entrhq/scout/pkg/checker"
	"github.com/entrhq/scout/pkg/config"
	"github.com/entrhq/scout/pkg/logging"
	"github.com/entrhq/scout/pkg/report"
	"github.com/entrhq/scout/pkg/tui"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigFile  string
	BaseURL     string
	Headless    bool
	SlowMo      time.Duration
	Settle      time.Duration
	NavTimeout  time.Duration
	Routes      string
	OutputDir   string
	Snapshots   bool
	Copy        bool
	TUI         bool
	NoColor     bool
	ShowVersion bool

	setFlags map[string]bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("scout v%s\n", version)
		return
	}

	cfg, err := buildConfig(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}

	// Set up signal handling for graceful shutdown; cancellation still runs
	// cleanup and prints the completion marker.
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()
	defer cancel()

	// Check outcomes never change the exit code; the run always completes.
	run(ctx, cli, cfg)
}

// parseFlags parses command line flags.
func parseFlags() *CLIConfig {
	cli := &CLIConfig{setFlags: make(map[string]bool)}
	defaults := config.DefaultConfig()

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&cli.BaseURL, "base-url", defaults.BaseURL, "Base URL of the application under test")
	flag.BoolVar(&cli.Headless, "headless", defaults.Browser.Headless, "Run the browser without a visible window")
	flag.DurationVar(&cli.SlowMo, "slow-mo", defaults.Browser.SlowMo, "Delay between driver operations (headed runs)")
	flag.DurationVar(&cli.Settle, "settle", defaults.Timing.Settle, "Pause after network idle for client-side rendering")
	flag.DurationVar(&cli.NavTimeout, "timeout", defaults.Timing.NavTimeout, "Per-navigation timeout")
	flag.StringVar(&cli.Routes, "routes", "", "Glob pattern selecting a subset of routes to check")
	flag.StringVar(&cli.OutputDir, "output", "", "Directory for JSON/Markdown report artifacts")
	flag.BoolVar(&cli.Snapshots, "snapshots", false, "Attach cleaned HTML snapshots to the JSON artifact")
	flag.BoolVar(&cli.Copy, "copy", false, "Copy the finished text report to the clipboard")
	flag.BoolVar(&cli.TUI, "tui", false, "Show a live view while checks run")
	flag.BoolVar(&cli.NoColor, "no-color", false, "Disable styled output")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scout - browser-driven UI smoke checker\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scout [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Check the default local dev server, headed, watchable\n")
		fmt.Fprintf(os.Stderr, "  scout\n\n")
		fmt.Fprintf(os.Stderr, "  # Headless CI run with artifacts\n")
		fmt.Fprintf(os.Stderr, "  scout -headless -output smoke-results\n\n")
		fmt.Fprintf(os.Stderr, "  # Only the project routes\n")
		fmt.Fprintf(os.Stderr, "  scout -routes '/projects*'\n\n")
	}

	flag.Parse()
	flag.Visit(func(f *flag.Flag) { cli.setFlags[f.Name] = true })
	return cli
}

// buildConfig loads the config file (or defaults) and applies CLI overrides
// for flags that were explicitly set.
func buildConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cli.ConfigFile != "" {
		loaded, err := config.LoadFromFile(cli.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.setFlags["base-url"] {
		cfg.BaseURL = cli.BaseURL
	}
	if cli.setFlags["headless"] {
		cfg.Browser.Headless = cli.Headless
	}
	if cli.setFlags["slow-mo"] {
		cfg.Browser.SlowMo = cli.SlowMo
	}
	if cli.setFlags["settle"] {
		cfg.Timing.Settle = cli.Settle
	}
	if cli.setFlags["timeout"] {
		cfg.Timing.NavTimeout = cli.NavTimeout
	}
	if cli.OutputDir != "" {
		cfg.Artifacts.Enabled = true
		cfg.Artifacts.OutputDir = cli.OutputDir
	}
	if cli.Snapshots {
		cfg.Artifacts.Snapshots = true
	}

	if err := cfg.FilterRoutes(cli.Routes); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// run executes the smoke check. It never returns a failure to the caller:
// everything after configuration is reported, not propagated.
func run(ctx context.Context, cli *CLIConfig, cfg *config.Config) {
	log, _ := logging.NewLogger("scout") // fallback logger on error is fine
	defer log.Close()

	console := report.NewConsoleWriter(os.Stdout, !cli.NoColor)

	log.Infof("starting smoke check against %s", cfg.BaseURL)

	driver := browser.NewDriver()
	if err := driver.Start(); err != nil {
		log.Errorf("driver start failed: %v", err)
		console.Write(checker.Result{
			Status:  checker.StatusError,
			Scope:   "driver",
			Message: fmt.Sprintf("unexpected failure: %v", err),
		})
		console.WriteCompletion()
		return
	}
	defer driver.Stop()

	session, err := driver.NewSession(browser.SessionOptions{
		Headless: cfg.Browser.Headless,
		SlowMo:   float64(cfg.Browser.SlowMo.Milliseconds()),
		Viewport: &browser.Viewport{
			Width:  cfg.Browser.ViewportWidth,
			Height: cfg.Browser.ViewportHeight,
		},
	})
	if err != nil {
		log.Errorf("session start failed: %v", err)
		console.Write(checker.Result{
			Status:  checker.StatusError,
			Scope:   "session",
			Message: fmt.Sprintf("unexpected failure: %v", err),
		})
		console.WriteCompletion()
		return
	}
	// The one session close, on every path out of this function.
	defer session.Close()

	var sum *checker.Summary
	if cli.TUI {
		sum = runWithTUI(ctx, cfg, log, session, console)
	} else {
		runner := checker.NewRunner(cfg, log, console.Write)
		sum = runner.Run(ctx, session)
		console.WriteSummary(sum)
	}

	finish(cli, cfg, log, sum)
}

// runWithTUI streams results into the live view and returns the summary once
// the run (or the user) ends it. Quitting the view early cancels the run; the
// summary and completion marker then go to stdout, where the closed view can
// no longer show them.
func runWithTUI(ctx context.Context, cfg *config.Config, log *logging.Logger, session *browser.Session, console *report.ConsoleWriter) *checker.Summary {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.New(cfg.BaseURL))

	done := make(chan *checker.Summary, 1)
	go func() {
		runner := checker.NewRunner(cfg, log, func(res checker.Result) {
			p.Send(tui.ResultMsg(res))
		})
		sum := runner.Run(ctx, session)
		done <- sum
		p.Send(tui.DoneMsg{Summary: sum})
	}()

	final, err := p.Run()
	if err != nil {
		log.Errorf("live view failed: %v", err)
	}
	cancel()
	sum := <-done

	if m, ok := final.(tui.Model); !ok || !m.Done() {
		console.WriteSummary(sum)
	}
	return sum
}

// finish writes artifacts and the clipboard export once the run is over.
func finish(cli *CLIConfig, cfg *config.Config, log *logging.Logger, sum *checker.Summary) {
	if sum == nil {
		return
	}

	if cfg.Artifacts.Enabled {
		writer := report.NewArtifactWriter(cfg.Artifacts.OutputDir)
		if err := writer.WriteAll(sum); err != nil {
			log.Errorf("artifact write failed: %v", err)
			fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		}
	}

	if cli.Copy {
		if err := report.CopyToClipboard(sum); err != nil {
			log.Errorf("clipboard copy failed: %v", err)
			fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		}
	}
}
