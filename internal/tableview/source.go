package tableview

import "fmt"

// DataSource describes the shape of a table.
type DataSource interface {
	NumberOfSections() int
	NumberOfRows(section int) int
}

// SupplementarySource reports which sections have a header or footer.
// Data sources that do not implement it have neither.
type SupplementarySource interface {
	HasHeader(section int) bool
	HasFooter(section int) bool
}

// TitleSource provides display text. It is optional.
type TitleSource interface {
	CellText(row, section int) string
	HeaderTitle(section int) string
	FooterTitle(section int) string
}

// Section describes one section of a StaticSource.
type Section struct {
	Rows   int
	Header bool
	Footer bool
	Title  string
}

// StaticSource is a DataSource backed by a fixed list of sections.
type StaticSource []Section

func (s StaticSource) NumberOfSections() int {
	return len(s)
}

func (s StaticSource) NumberOfRows(section int) int {
	if section < 0 || section >= len(s) {
		return 0
	}
	return s[section].Rows
}

func (s StaticSource) HasHeader(section int) bool {
	return section >= 0 && section < len(s) && s[section].Header
}

func (s StaticSource) HasFooter(section int) bool {
	return section >= 0 && section < len(s) && s[section].Footer
}

func (s StaticSource) CellText(row, section int) string {
	return fmt.Sprintf("row %d", row)
}

func (s StaticSource) HeaderTitle(section int) string {
	if section >= 0 && section < len(s) && s[section].Title != "" {
		return s[section].Title
	}
	return fmt.Sprintf("Section %d", section)
}

func (s StaticSource) FooterTitle(section int) string {
	return fmt.Sprintf("%d rows", s.NumberOfRows(section))
}
