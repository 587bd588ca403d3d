package tableview

import (
	"fmt"

	"github.com/dshills/cascade/internal/cascade"
)

// Table is a scrolling window over a DataSource.
type Table struct {
	source   DataSource
	delegate cascade.Display

	items  []Item
	top    int
	height int

	visible []Visible
	byItem  map[Item]int

	cellPool []*Cell
	viewPool []*View
}

// New creates a table showing height lines of src. Nothing is displayed
// until Reload is called.
func New(src DataSource, delegate cascade.Display, height int) *Table {
	if height < 0 {
		height = 0
	}
	return &Table{
		source:   src,
		delegate: delegate,
		height:   height,
		byItem:   make(map[Item]int),
	}
}

// SetDelegate replaces the delegate. Items already visible are not re-announced.
func (t *Table) SetDelegate(d cascade.Display) {
	t.delegate = d
}

// Len returns the number of lines in the layout.
func (t *Table) Len() int {
	return len(t.items)
}

// Top returns the first visible line.
func (t *Table) Top() int {
	return t.top
}

// Height returns the number of visible lines.
func (t *Table) Height() int {
	return t.height
}

// Items returns the full layout.
func (t *Table) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// Visible returns the displayed items in line order.
func (t *Table) Visible() []Visible {
	out := make([]Visible, len(t.visible))
	copy(out, t.visible)
	return out
}

// Reload ends display of every visible item, re-reads the data source and
// displays the current window again.
func (t *Table) Reload() {
	t.apply(nil)
	t.items = layout(t.source)
	t.top = t.clamp(t.top)
	t.apply(t.window())
}

// Scroll moves the window by delta lines. It returns true if the window moved.
func (t *Table) Scroll(delta int) bool {
	return t.ScrollTo(t.top + delta)
}

// ScrollTo moves the window so line is the first visible line.
func (t *Table) ScrollTo(line int) bool {
	line = t.clamp(line)
	if line == t.top {
		return false
	}
	t.top = line
	t.apply(t.window())
	return true
}

// Resize changes the number of visible lines.
func (t *Table) Resize(height int) {
	if height < 0 {
		height = 0
	}
	t.height = height
	t.top = t.clamp(t.top)
	t.apply(t.window())
}

func (t *Table) clamp(line int) int {
	maxTop := len(t.items) - t.height
	if maxTop < 0 {
		maxTop = 0
	}
	if line > maxTop {
		line = maxTop
	}
	if line < 0 {
		line = 0
	}
	return line
}

func (t *Table) window() []Item {
	end := t.top + t.height
	if end > len(t.items) {
		end = len(t.items)
	}
	if t.top >= end {
		return nil
	}
	return t.items[t.top:end]
}

// apply makes want the visible set. Departures are announced before
// arrivals, each in line order.
func (t *Table) apply(want []Item) {
	keep := make(map[Item]bool, len(want))
	for _, it := range want {
		keep[it] = true
	}

	for _, v := range t.visible {
		if !keep[v.Item] {
			t.endDisplay(v)
		}
	}

	next := make([]Visible, 0, len(want))
	nextIdx := make(map[Item]int, len(want))
	for _, it := range want {
		var v Visible
		if i, ok := t.byItem[it]; ok {
			v = t.visible[i]
		} else {
			v = t.display(it)
		}
		nextIdx[it] = len(next)
		next = append(next, v)
	}

	t.visible = next
	t.byItem = nextIdx
}

func (t *Table) display(it Item) Visible {
	v := Visible{Item: it}
	titles, _ := t.source.(TitleSource)

	switch it.Kind {
	case ItemCell:
		c := t.dequeueCell()
		c.Path = it.Path()
		c.Text = fmt.Sprintf("row %d", it.Row)
		if titles != nil {
			c.Text = titles.CellText(it.Row, it.Section)
		}
		v.Cell = c
		if t.delegate != nil {
			t.delegate.WillDisplayCell(t, c, c.Path)
		}
	case ItemHeader, ItemFooter:
		view := t.dequeueView()
		view.Kind = it.Kind
		view.Section = it.Section
		view.Title = fmt.Sprintf("%s %d", it.Kind, it.Section)
		if titles != nil {
			if it.Kind == ItemHeader {
				view.Title = titles.HeaderTitle(it.Section)
			} else {
				view.Title = titles.FooterTitle(it.Section)
			}
		}
		v.View = view
		if t.delegate != nil {
			if it.Kind == ItemHeader {
				t.delegate.WillDisplayHeader(t, view, it.Section)
			} else {
				t.delegate.WillDisplayFooter(t, view, it.Section)
			}
		}
	}
	return v
}

func (t *Table) endDisplay(v Visible) {
	switch v.Item.Kind {
	case ItemCell:
		if t.delegate != nil {
			t.delegate.DidEndDisplayingCell(t, v.Cell, v.Item.Path())
		}
		t.cellPool = append(t.cellPool, v.Cell)
	case ItemHeader:
		if t.delegate != nil {
			t.delegate.DidEndDisplayingHeader(t, v.View, v.Item.Section)
		}
		t.viewPool = append(t.viewPool, v.View)
	case ItemFooter:
		if t.delegate != nil {
			t.delegate.DidEndDisplayingFooter(t, v.View, v.Item.Section)
		}
		t.viewPool = append(t.viewPool, v.View)
	}
}

func (t *Table) dequeueCell() *Cell {
	if n := len(t.cellPool); n > 0 {
		c := t.cellPool[n-1]
		t.cellPool = t.cellPool[:n-1]
		return c
	}
	return &Cell{}
}

func (t *Table) dequeueView() *View {
	if n := len(t.viewPool); n > 0 {
		v := t.viewPool[n-1]
		t.viewPool = t.viewPool[:n-1]
		return v
	}
	return &View{}
}
