// Package recorder provides child delegates that record the notifications
// they receive. They serve as fixtures in tests and as the built-in
// children of the cascade command.
package recorder

import (
	"sync"

	"github.com/dshills/cascade/internal/cascade"
)

// Call is one notification received by a delegate.
type Call struct {
	Kind    cascade.Kind
	Table   cascade.Table
	Cell    cascade.Cell
	View    cascade.View
	Path    cascade.IndexPath
	Section int
}

// Stub is a recording delegate.
type Stub interface {
	cascade.Delegate

	// Calls returns the received notifications, oldest first.
	Calls() []Call

	// Latest returns the most recent notification.
	Latest() (Call, bool)

	// Reset forgets all recorded calls.
	Reset()
}

// Hook is called after a call is recorded.
type Hook func(index int, call Call)

type log struct {
	mu       sync.Mutex
	position int
	calls    []Call
	hook     Hook
}

func (l *log) Index() int {
	return l.position
}

func (l *log) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Call, len(l.calls))
	copy(out, l.calls)
	return out
}

func (l *log) Latest() (Call, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.calls) == 0 {
		return Call{}, false
	}
	return l.calls[len(l.calls)-1], true
}

func (l *log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
}

// SetHook installs a hook run after each recorded call.
func (l *log) SetHook(h Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hook = h
}

func (l *log) record(c Call) {
	l.mu.Lock()
	l.calls = append(l.calls, c)
	hook := l.hook
	l.mu.Unlock()

	if hook != nil {
		hook(l.position, c)
	}
}

// Bare implements no notification kinds. Its call log is always empty.
type Bare struct {
	log
}

// NewBare creates a bare delegate at index.
func NewBare(index int) *Bare {
	return &Bare{log: log{position: index}}
}

// Complete implements every notification kind.
type Complete struct {
	log
}

// NewComplete creates a complete delegate at index.
func NewComplete(index int) *Complete {
	return &Complete{log: log{position: index}}
}

func (c *Complete) WillDisplayCell(table cascade.Table, cell cascade.Cell, path cascade.IndexPath) {
	c.record(Call{Kind: cascade.KindWillDisplayCell, Table: table, Cell: cell, Path: path, Section: path.Section})
}

func (c *Complete) WillDisplayHeader(table cascade.Table, view cascade.View, section int) {
	c.record(Call{Kind: cascade.KindWillDisplayHeader, Table: table, View: view, Section: section})
}

func (c *Complete) WillDisplayFooter(table cascade.Table, view cascade.View, section int) {
	c.record(Call{Kind: cascade.KindWillDisplayFooter, Table: table, View: view, Section: section})
}

func (c *Complete) DidEndDisplayingCell(table cascade.Table, cell cascade.Cell, path cascade.IndexPath) {
	c.record(Call{Kind: cascade.KindDidEndDisplayingCell, Table: table, Cell: cell, Path: path, Section: path.Section})
}

func (c *Complete) DidEndDisplayingHeader(table cascade.Table, view cascade.View, section int) {
	c.record(Call{Kind: cascade.KindDidEndDisplayingHeader, Table: table, View: view, Section: section})
}

func (c *Complete) DidEndDisplayingFooter(table cascade.Table, view cascade.View, section int) {
	c.record(Call{Kind: cascade.KindDidEndDisplayingFooter, Table: table, View: view, Section: section})
}

// Selective implements the methods of every kind but advertises only
// the kinds it was created with.
type Selective struct {
	Complete
	kinds map[cascade.Kind]bool
}

// NewSelective creates a delegate at index that supports only kinds.
func NewSelective(index int, kinds ...cascade.Kind) *Selective {
	s := &Selective{
		Complete: Complete{log: log{position: index}},
		kinds:    make(map[cascade.Kind]bool, len(kinds)),
	}
	for _, k := range kinds {
		s.kinds[k] = true
	}
	return s
}

// Supports implements cascade.CapabilityReporter.
func (s *Selective) Supports(kind cascade.Kind) bool {
	return s.kinds[kind]
}

var (
	_ Stub            = (*Bare)(nil)
	_ Stub            = (*Complete)(nil)
	_ Stub            = (*Selective)(nil)
	_ cascade.Display = (*Complete)(nil)
)
