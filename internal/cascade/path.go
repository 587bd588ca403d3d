package cascade

import "fmt"

// IndexPath locates an item in a sectioned table.
// It is a value; delegates receive a copy of the path the parent received.
type IndexPath struct {
	Row     int
	Section int
}

// NewIndexPath creates an IndexPath for the given row and section.
func NewIndexPath(row, section int) IndexPath {
	return IndexPath{Row: row, Section: section}
}

// SectionPath creates the path used for section-only notifications.
// The row is a placeholder and never selects a child.
func SectionPath(section int) IndexPath {
	return IndexPath{Row: 0, Section: section}
}

// String returns the path as "row:section".
func (p IndexPath) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Section)
}
