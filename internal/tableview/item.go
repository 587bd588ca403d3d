package tableview

import (
	"fmt"

	"github.com/dshills/cascade/internal/cascade"
)

// ItemKind distinguishes the lines of a table.
type ItemKind uint8

const (
	ItemHeader ItemKind = iota
	ItemCell
	ItemFooter
)

// String returns the item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemHeader:
		return "header"
	case ItemCell:
		return "cell"
	case ItemFooter:
		return "footer"
	default:
		return "unknown"
	}
}

// Item is one line of the table layout.
// Row is meaningful only for cells.
type Item struct {
	Kind    ItemKind
	Section int
	Row     int
}

// Path returns the index path of the item.
func (it Item) Path() cascade.IndexPath {
	if it.Kind == ItemCell {
		return cascade.NewIndexPath(it.Row, it.Section)
	}
	return cascade.SectionPath(it.Section)
}

// String returns a short description such as "cell 2:0".
func (it Item) String() string {
	if it.Kind == ItemCell {
		return fmt.Sprintf("cell %d:%d", it.Row, it.Section)
	}
	return fmt.Sprintf("%s %d", it.Kind, it.Section)
}

// Cell is the object handed to delegates for a visible row.
type Cell struct {
	Path cascade.IndexPath
	Text string
}

// View is the object handed to delegates for a visible header or footer.
type View struct {
	Kind    ItemKind
	Section int
	Title   string
}

// Visible is an item together with the object displaying it.
// Exactly one of Cell and View is set.
type Visible struct {
	Item Item
	Cell *Cell
	View *View
}

// layout flattens a data source into lines.
func layout(src DataSource) []Item {
	sup, _ := src.(SupplementarySource)

	var items []Item
	for s := 0; s < src.NumberOfSections(); s++ {
		if sup != nil && sup.HasHeader(s) {
			items = append(items, Item{Kind: ItemHeader, Section: s})
		}
		for r := 0; r < src.NumberOfRows(s); r++ {
			items = append(items, Item{Kind: ItemCell, Section: s, Row: r})
		}
		if sup != nil && sup.HasFooter(s) {
			items = append(items, Item{Kind: ItemFooter, Section: s})
		}
	}
	return items
}
