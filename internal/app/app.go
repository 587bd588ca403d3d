package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/config"
	"github.com/dshills/cascade/internal/logging"
	"github.com/dshills/cascade/internal/recorder"
	"github.com/dshills/cascade/internal/script"
	"github.com/dshills/cascade/internal/tableview"
	"github.com/dshills/cascade/internal/telemetry"
)

// Options configures New.
type Options struct {
	// Logger defaults to logging.Default().
	Logger *logging.Logger

	// Registry receives the metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry

	// ActivitySize bounds the activity log.
	ActivitySize int
}

// App is a configured propagator driving a simulated table.
type App struct {
	cfg *config.Config
	log *logging.Logger

	root     *cascade.Propagator
	table    *tableview.Table
	activity *Activity
	metrics  *telemetry.Metrics
	server   *telemetry.Server

	// heightLimit caps the table height when >= 0.
	heightLimit int

	stubs   []recorder.Stub
	scripts []*script.Delegate
}

// New builds an App from cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	a := &App{
		cfg:      cfg,
		log:      opts.Logger.WithComponent("app"),
		activity: NewActivity(opts.ActivitySize),

		heightLimit: -1,
	}

	metrics, err := telemetry.NewMetrics(opts.Registry)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	a.metrics = metrics

	children, err := a.buildChildren(cfg, cfg.Children)
	if err != nil {
		a.closeScripts()
		return nil, err
	}

	root, err := cascade.New(0, children,
		cascade.WithMode(cfg.Propagation.Mode),
		cascade.WithObserver(cascade.MultiObserver{
			logging.NewObserver(opts.Logger),
			a.metrics,
			a.activity,
		}),
	)
	if err != nil {
		a.closeScripts()
		return nil, fmt.Errorf("building propagator: %w", err)
	}
	a.root = root

	a.table = tableview.New(sectionsOf(cfg), root, a.tableHeight(cfg))

	if cfg.Metrics.Addr != "" {
		srv, err := a.metrics.Serve(cfg.Metrics.Addr)
		if err != nil {
			a.closeScripts()
			return nil, fmt.Errorf("serving metrics on %s: %w", cfg.Metrics.Addr, err)
		}
		a.server = srv
		a.log.Info("metrics listening", "addr", srv.Addr())
	}

	return a, nil
}

// Root returns the root propagator.
func (a *App) Root() *cascade.Propagator {
	return a.root
}

// Table returns the simulated table.
func (a *App) Table() *tableview.Table {
	return a.table
}

// Activity returns the outcome log.
func (a *App) Activity() *Activity {
	return a.activity
}

// Stubs returns the recording children, depth first.
func (a *App) Stubs() []recorder.Stub {
	return a.stubs
}

// Config returns the configuration currently applied.
func (a *App) Config() *config.Config {
	return a.cfg
}

// ToggleMode switches the root propagation mode and returns the new mode.
func (a *App) ToggleMode() cascade.PropagationMode {
	mode := a.root.Mode().Toggle()
	a.root.SetMode(mode)
	a.log.Info("propagation mode changed", "mode", mode.String())
	return mode
}

// Apply switches to cfg. A new child set is built and validated first; if
// it is rejected nothing is changed. When the children or the table change,
// the visible items end display under the old mode and children, then the
// new mode and children are installed and the table is rebuilt and
// reloaded so the new children see every visible item. A mode-only change
// takes effect with the next notification.
func (a *App) Apply(cfg *config.Config) error {
	childrenChanged := !reflect.DeepEqual(cfg.Children, a.cfg.Children)
	tableChanged := !reflect.DeepEqual(cfg.Table, a.cfg.Table)

	var children []cascade.Delegate
	var prevScripts []*script.Delegate
	if childrenChanged {
		prevStubs := a.stubs
		prevScripts = a.scripts
		a.stubs, a.scripts = nil, nil

		built, err := a.buildChildren(cfg, cfg.Children)
		if err == nil {
			_, err = cascade.NewRegistry(built...)
		}
		if err != nil {
			a.closeScripts()
			a.stubs, a.scripts = prevStubs, prevScripts
			return fmt.Errorf("applying children: %w", err)
		}
		children = built
	}

	if childrenChanged || tableChanged {
		a.table.Resize(0)
	}

	if cfg.Propagation.Mode != a.root.Mode() {
		a.root.SetMode(cfg.Propagation.Mode)
		a.log.Info("propagation mode changed", "mode", cfg.Propagation.Mode.String())
	}

	if childrenChanged {
		// The registry was validated above.
		if err := a.root.SetChildren(children); err != nil {
			return fmt.Errorf("applying children: %w", err)
		}
		for _, s := range prevScripts {
			_ = s.Close()
		}
		a.log.Info("children replaced", "count", len(children))
	}

	if childrenChanged || tableChanged {
		a.table = tableview.New(sectionsOf(cfg), a.root, a.tableHeight(cfg))
		a.table.Reload()
	}

	a.cfg = cfg
	return nil
}

// LimitTableHeight caps the table at rows lines, for hosts that can show
// fewer lines than configured. A negative limit removes the cap. The
// current table is resized right away, and tables built by Apply keep
// the cap.
func (a *App) LimitTableHeight(rows int) {
	a.heightLimit = rows
	if h := a.tableHeight(a.cfg); h != a.table.Height() {
		a.table.Resize(h)
	}
}

func (a *App) tableHeight(cfg *config.Config) int {
	h := cfg.Table.Height
	if a.heightLimit >= 0 && h > a.heightLimit {
		h = a.heightLimit
	}
	return h
}

// Close releases scripts and stops the metrics server.
func (a *App) Close() error {
	var errs []error
	a.closeScripts()
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		cancel()
		a.server = nil
	}
	return errors.Join(errs...)
}

func (a *App) closeScripts() {
	for _, s := range a.scripts {
		_ = s.Close()
	}
	a.scripts = nil
}

func (a *App) buildChildren(cfg *config.Config, cfgs []config.ChildConfig) ([]cascade.Delegate, error) {
	children := make([]cascade.Delegate, 0, len(cfgs))
	for _, cc := range cfgs {
		d, err := a.buildChild(cfg, cc)
		if err != nil {
			return nil, fmt.Errorf("child %d (%s): %w", cc.Index, cc.Type, err)
		}
		children = append(children, d)
	}
	return children, nil
}

func (a *App) buildChild(cfg *config.Config, cc config.ChildConfig) (cascade.Delegate, error) {
	switch cc.Type {
	case config.ChildBare:
		b := recorder.NewBare(cc.Index)
		a.stubs = append(a.stubs, b)
		return b, nil

	case config.ChildComplete:
		c := recorder.NewComplete(cc.Index)
		c.SetHook(a.traceCall)
		a.stubs = append(a.stubs, c)
		return c, nil

	case config.ChildSelective:
		s := recorder.NewSelective(cc.Index, cc.Kinds...)
		s.SetHook(a.traceCall)
		a.stubs = append(a.stubs, s)
		return s, nil

	case config.ChildLua:
		d, err := script.LoadFile(cc.Index, cfg.ResolvePath(cc.Script), script.WithLogger(a.log))
		if err != nil {
			return nil, err
		}
		a.scripts = append(a.scripts, d)
		return d, nil

	case config.ChildPropagator:
		nested, err := a.buildChildren(cfg, cc.Children)
		if err != nil {
			return nil, err
		}
		mode := cfg.Propagation.Mode
		if cc.Mode != nil {
			mode = *cc.Mode
		}
		return cascade.New(cc.Index, nested, cascade.WithMode(mode), cascade.WithObserver(logging.NewObserver(a.log)))

	default:
		return nil, fmt.Errorf("unknown child type %q", cc.Type)
	}
}

func (a *App) traceCall(index int, call recorder.Call) {
	a.log.Debug("child called", "child", index, "kind", call.Kind.String(), "path", call.Path.String())
}

func sectionsOf(cfg *config.Config) tableview.StaticSource {
	src := make(tableview.StaticSource, len(cfg.Table.Sections))
	for i, s := range cfg.Table.Sections {
		src[i] = tableview.Section{Rows: s.Rows, Header: s.Header, Footer: s.Footer, Title: s.Title}
	}
	return src
}
