// Package main is the entry point for the cascade demo.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/cascade/internal/app"
	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/config"
	"github.com/dshills/cascade/internal/logging"
	"github.com/dshills/cascade/internal/replay"
	"github.com/dshills/cascade/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	ScriptPath string
	Mode       string
	LogLevel   string
	UI         bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := opts.load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// The terminal owns the screen while the UI runs.
	var logOut io.Writer = os.Stderr
	if opts.UI && opts.ScriptPath == "" {
		logOut = io.Discard
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.Format(cfg.Logging.Format),
		Output: logOut,
	})
	logging.SetDefault(logger)

	application, err := app.New(cfg, app.Options{Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	// Handle signals for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	switch {
	case opts.ScriptPath != "":
		return runScript(application, opts.ScriptPath, logger)
	case opts.UI:
		return runUI(ctx, application, opts, logger)
	default:
		return runHeadless(ctx, application)
	}
}

// runScript replays a scenario file against the root propagator.
func runScript(application *app.App, path string, logger *logging.Logger) int {
	script, err := replay.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	report := replay.NewRunner(logger).Run(application.Root(), script)

	fmt.Printf("run %s: %s\n", report.RunID, report.Script)
	for _, out := range report.Outcomes {
		fmt.Printf("  %s\n", app.Describe(out))
	}
	for _, f := range report.Failures {
		fmt.Printf("FAIL %s\n", f)
	}
	if !report.Passed() {
		fmt.Printf("%d of %d steps failed\n", len(report.Failures), len(script.Steps))
		return 1
	}
	fmt.Printf("ok, %d steps\n", len(script.Steps))
	return 0
}

// runUI starts the terminal front end, reloading the config file on change.
func runUI(ctx context.Context, application *app.App, opts options, logger *logging.Logger) int {
	uiOpts := []ui.Option{ui.WithLogger(logger)}
	if configPath := opts.ConfigPath; configPath != "" {
		w, err := config.Watch(configPath, config.WithLoader(opts.load))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching %s: %v\n", configPath, err)
			return 1
		}
		defer w.Close()
		uiOpts = append(uiOpts, ui.WithWatcher(w))
	}

	screen, err := ui.NewTerminal(application, uiOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application.Table().Reload()
	if err := screen.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runHeadless scrolls the table from top to bottom one line at a time and
// prints what each child received.
func runHeadless(ctx context.Context, application *app.App) int {
	table := application.Table()
	table.Reload()
	for table.Scroll(1) {
		if ctx.Err() != nil {
			break
		}
	}

	act := application.Activity()
	fmt.Printf("mode %s, %d lines, %d visible\n", application.Root().Mode(), table.Len(), table.Height())
	for _, r := range []cascade.Result{
		cascade.Forwarded,
		cascade.DroppedModeMismatch,
		cascade.DroppedOutOfRange,
		cascade.DroppedUnsupported,
	} {
		fmt.Printf("  %-22s %d\n", r, act.Total(r))
	}
	for _, s := range application.Stubs() {
		fmt.Printf("  child %d received %d calls\n", s.Index(), len(s.Calls()))
	}
	return 0
}

// load reads the config at path and applies the command line overrides,
// so reloads keep them.
func (o options) load(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.Mode != "" {
		mode, err := cascade.ParseMode(o.Mode)
		if err != nil {
			return nil, err
		}
		cfg.Propagation.Mode = mode
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	return cfg, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Replay a scenario file and exit")
	flag.StringVar(&opts.ScriptPath, "s", "", "Replay a scenario file and exit (shorthand)")
	flag.StringVar(&opts.Mode, "mode", "", "Propagation mode (row, section)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.UI, "ui", false, "Run the interactive terminal view")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cascade - table display notification propagator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cascade [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cascade                          Scroll the default table and print totals\n")
		fmt.Fprintf(os.Stderr, "  cascade -mode section            Same, routing by section\n")
		fmt.Fprintf(os.Stderr, "  cascade -c cascade.toml -ui      Interactive view, reloads on config change\n")
		fmt.Fprintf(os.Stderr, "  cascade -s scenarios/basic.yaml  Replay a scenario\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("cascade %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
