package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cascade/internal/app"
	"github.com/dshills/cascade/internal/cascade"
	"github.com/dshills/cascade/internal/config"
	"github.com/dshills/cascade/internal/logging"
	"github.com/dshills/cascade/internal/tableview"
)

// ErrQuit is returned by Run when the user asked to leave.
var ErrQuit = errors.New("quit requested")

var (
	styleDefault = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleSection = tcell.StyleDefault.Bold(true)
	styleDim     = tcell.StyleDefault.Dim(true)
	styleDropped = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Option configures a UI.
type Option func(*UI)

// WithWatcher applies configurations received from w while running.
func WithWatcher(w *config.Watcher) Option {
	return func(u *UI) {
		u.watcher = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(u *UI) {
		u.log = l
	}
}

// UI drives an App from a terminal screen.
type UI struct {
	screen  tcell.Screen
	app     *app.App
	watcher *config.Watcher
	log     *logging.Logger

	status string
	failed bool
}

// New creates a UI on screen. The screen is initialized by Run.
func New(screen tcell.Screen, a *app.App, opts ...Option) *UI {
	u := &UI{
		screen: screen,
		app:    a,
		log:    logging.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.log = u.log.WithComponent("ui")
	return u
}

// NewTerminal creates a UI on the controlling terminal.
func NewTerminal(a *app.App, opts ...Option) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen, a, opts...), nil
}

// Run initializes the screen and processes events until the user quits
// or ctx is done. It returns nil on a user quit.
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer u.screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go u.screen.ChannelEvents(events, quit)

	var updates <-chan *config.Config
	var watchErrs <-chan error
	if u.watcher != nil {
		updates = u.watcher.Updates()
		watchErrs = u.watcher.Errors()
	}

	_, h := u.screen.Size()
	u.fitTable(h)
	u.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := u.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case cfg := <-updates:
			u.applyConfig(cfg)

		case err := <-watchErrs:
			u.setStatus(fmt.Sprintf("config: %v", err), true)
			u.log.Warn("config reload failed", "error", err)
		}
		u.draw()
	}
}

// handleEvent processes one screen event. It returns ErrQuit when the
// user asked to leave.
func (u *UI) handleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		_, h := e.Size()
		u.fitTable(h)
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(e)
	}
	return nil
}

func (u *UI) handleKey(ev *tcell.EventKey) error {
	table := u.app.Table()
	page := table.Height()
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyUp:
		table.Scroll(-1)
	case tcell.KeyDown:
		table.Scroll(1)
	case tcell.KeyPgUp:
		table.Scroll(-page)
	case tcell.KeyPgDn:
		table.Scroll(page)
	case tcell.KeyHome:
		table.ScrollTo(0)
	case tcell.KeyEnd:
		table.ScrollTo(table.Len())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ErrQuit
		case 'm':
			mode := u.app.ToggleMode()
			u.setStatus("mode "+mode.String(), false)
		case 'r':
			table.Reload()
			u.setStatus("reloaded", false)
		case 'k':
			table.Scroll(-1)
		case 'j':
			table.Scroll(1)
		}
	}
	return nil
}

func (u *UI) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if err := u.app.Apply(cfg); err != nil {
		u.setStatus(fmt.Sprintf("config: %v", err), true)
		u.log.Warn("config rejected", "error", err)
		return
	}
	u.setStatus("config reloaded", false)
	u.log.Info("config applied", "path", cfg.Path())
}

// chromeLines is the number of screen lines not used by the table:
// the status line, the activity separator and the footer.
const chromeLines = 3

// fitTable limits the table window to the lines a screen of the given
// height can show, so nothing is displayed off screen.
func (u *UI) fitTable(screenHeight int) {
	rows := screenHeight - chromeLines
	if rows < 0 {
		rows = 0
	}
	u.app.LimitTableHeight(rows)
}

func (u *UI) setStatus(msg string, failed bool) {
	u.status = msg
	u.failed = failed
}

// draw renders the whole screen.
func (u *UI) draw() {
	u.screen.Clear()
	width, height := u.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}

	table := u.app.Table()
	root := u.app.Root()

	y := 0
	header := fmt.Sprintf(" mode: %s  children: %d  lines %d-%d of %d ",
		root.Mode(), len(root.Children()), table.Top(), table.Top()+len(table.Visible())-1, table.Len())
	fillLine(u.screen, y, width, styleStatus)
	drawText(u.screen, 0, y, width, styleStatus, header)
	y++

	for _, v := range table.Visible() {
		if y >= height-1 {
			break
		}
		text, style := lineFor(v)
		drawText(u.screen, 1, y, width-1, style, text)
		drawText(u.screen, width/2, y, width-width/2, styleDim, routeFor(root, v))
		y++
	}

	if y < height-1 {
		fillLine(u.screen, y, width, styleDim)
		drawText(u.screen, 0, y, width, styleDim, "─ activity ")
		y++
	}

	rows := height - 1 - y
	if rows > 0 {
		for _, out := range u.app.Activity().Recent(rows) {
			style := styleDefault
			if out.Result.Dropped() {
				style = styleDropped
			}
			drawText(u.screen, 1, y, width-1, style, app.Describe(out))
			y++
		}
	}

	footer := " q quit  m mode  r reload  ↑↓ scroll "
	style := styleStatus
	if u.status != "" {
		footer = " " + u.status + " "
		if u.failed {
			style = styleError
		}
	}
	fillLine(u.screen, height-1, width, style)
	drawText(u.screen, 0, height-1, width, style, footer)

	u.screen.Show()
}

// lineFor returns the text of a visible table line.
func lineFor(v tableview.Visible) (string, tcell.Style) {
	switch {
	case v.Cell != nil:
		return v.Cell.Text, styleDefault
	case v.View != nil && v.View.Kind == tableview.ItemHeader:
		return "== " + v.View.Title + " ==", styleSection
	case v.View != nil:
		return "-- " + v.View.Title + " --", styleDim
	default:
		return v.Item.String(), styleDefault
	}
}

// routeFor describes where the line's display notification goes under
// the current mode and children.
func routeFor(p *cascade.Propagator, v tableview.Visible) string {
	kind := cascade.KindWillDisplayCell
	switch v.Item.Kind {
	case tableview.ItemHeader:
		kind = cascade.KindWillDisplayHeader
	case tableview.ItemFooter:
		kind = cascade.KindWillDisplayFooter
	}

	out := p.Preview(kind, v.Item.Path())
	switch out.Result {
	case cascade.Forwarded:
		return fmt.Sprintf("-> %d", out.Target)
	case cascade.DroppedUnsupported:
		return fmt.Sprintf("-> %d (unsupported)", out.Target)
	case cascade.DroppedModeMismatch:
		return "(section only)"
	default:
		return "(out of range)"
	}
}

func drawText(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	for _, r := range text {
		if maxWidth <= 0 {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
		maxWidth--
	}
}

func fillLine(s tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
