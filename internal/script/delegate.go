package script

import (
	"fmt"
	"os"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/logging"
)

// ErrorHandler receives errors raised by a script while it handles a notification.
type ErrorHandler func(kind cascade.Kind, err error)

// Delegate is a cascade delegate backed by a Lua script.
type Delegate struct {
	mu sync.Mutex

	position int
	name     string
	L        *lua.LState
	funcs    map[cascade.Kind]*lua.LFunction

	log     *logging.Logger
	onError ErrorHandler
	closed  bool
}

// Option configures a Delegate.
type Option func(*Delegate)

// WithLogger sets the logger used by log() and the default error handler.
func WithLogger(l *logging.Logger) Option {
	return func(d *Delegate) {
		if l != nil {
			d.log = l
		}
	}
}

// WithErrorHandler sets the handler for script errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(d *Delegate) {
		d.onError = h
	}
}

// Load compiles and runs source, then collects its notification functions.
// name identifies the script in logs and errors.
func Load(index int, name, source string, opts ...Option) (*Delegate, error) {
	d := &Delegate{
		position: index,
		name:     name,
		funcs:    make(map[cascade.Kind]*lua.LFunction),
		log:      logging.NullLogger,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.WithComponent("script").WithField("script", name)
	if d.onError == nil {
		d.onError = func(kind cascade.Kind, err error) {
			d.log.Warn("script error", "kind", kind.String(), "error", err)
		}
	}

	d.L = newSandboxedState()
	d.L.SetGlobal("log", d.L.NewFunction(d.luaLog))

	if err := d.L.DoString(source); err != nil {
		d.L.Close()
		return nil, fmt.Errorf("loading script %s: %w", name, err)
	}

	for _, kind := range cascade.Kinds() {
		if fn, ok := d.L.GetGlobal(FunctionName(kind)).(*lua.LFunction); ok {
			d.funcs[kind] = fn
		}
	}
	if len(d.funcs) == 0 {
		d.L.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoHandlers, name)
	}

	return d, nil
}

// LoadFile loads a script from path.
func LoadFile(index int, path string, opts ...Option) (*Delegate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return Load(index, path, string(data), opts...)
}

// FunctionName returns the Lua global that handles kind.
func FunctionName(kind cascade.Kind) string {
	return strings.ReplaceAll(kind.String(), "-", "_")
}

// Name returns the script name.
func (d *Delegate) Name() string {
	return d.name
}

// Close releases the Lua state. Later notifications are ignored.
func (d *Delegate) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.L.Close()
	return nil
}

// Index implements cascade.Delegate.
func (d *Delegate) Index() int {
	return d.position
}

// Supports implements cascade.CapabilityReporter.
func (d *Delegate) Supports(kind cascade.Kind) bool {
	_, ok := d.funcs[kind]
	return ok
}

func (d *Delegate) WillDisplayCell(table cascade.Table, cell cascade.Cell, path cascade.IndexPath) {
	d.call(cascade.KindWillDisplayCell, d.wrap(table), d.wrap(cell), lua.LNumber(path.Row), lua.LNumber(path.Section))
}

func (d *Delegate) WillDisplayHeader(table cascade.Table, view cascade.View, section int) {
	d.call(cascade.KindWillDisplayHeader, d.wrap(table), d.wrap(view), lua.LNumber(section))
}

func (d *Delegate) WillDisplayFooter(table cascade.Table, view cascade.View, section int) {
	d.call(cascade.KindWillDisplayFooter, d.wrap(table), d.wrap(view), lua.LNumber(section))
}

func (d *Delegate) DidEndDisplayingCell(table cascade.Table, cell cascade.Cell, path cascade.IndexPath) {
	d.call(cascade.KindDidEndDisplayingCell, d.wrap(table), d.wrap(cell), lua.LNumber(path.Row), lua.LNumber(path.Section))
}

func (d *Delegate) DidEndDisplayingHeader(table cascade.Table, view cascade.View, section int) {
	d.call(cascade.KindDidEndDisplayingHeader, d.wrap(table), d.wrap(view), lua.LNumber(section))
}

func (d *Delegate) DidEndDisplayingFooter(table cascade.Table, view cascade.View, section int) {
	d.call(cascade.KindDidEndDisplayingFooter, d.wrap(table), d.wrap(view), lua.LNumber(section))
}

// wrap boxes an opaque payload without copying it.
func (d *Delegate) wrap(v any) lua.LValue {
	if v == nil {
		return lua.LNil
	}
	return &lua.LUserData{Value: v}
}

func (d *Delegate) call(kind cascade.Kind, args ...lua.LValue) {
	fn, ok := d.funcs[kind]
	if !ok {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	err := d.pcall(fn, args)
	d.mu.Unlock()

	if err != nil && d.onError != nil {
		d.onError(kind, err)
	}
}

func (d *Delegate) pcall(fn *lua.LFunction, args []lua.LValue) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return d.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
}

func (d *Delegate) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	d.log.Info(strings.Join(parts, " "))
	return 0
}

var (
	_ cascade.Display            = (*Delegate)(nil)
	_ cascade.CapabilityReporter = (*Delegate)(nil)
)
