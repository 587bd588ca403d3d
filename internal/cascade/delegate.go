package cascade

// Table is the widget a notification originates from.
// It is forwarded to children unchanged.
type Table any

// Cell is a visual cell object. It is forwarded by identity and never inspected.
type Cell any

// View is a header or footer view. It is forwarded by identity and never inspected.
type View any

// Delegate is a child that can occupy a position in a Registry.
// What it can receive is decided by the capability interfaces it implements.
type Delegate interface {
	// Index returns the position the delegate occupies in its parent.
	Index() int
}

// CellDisplayer receives KindWillDisplayCell.
type CellDisplayer interface {
	WillDisplayCell(table Table, cell Cell, path IndexPath)
}

// HeaderDisplayer receives KindWillDisplayHeader.
type HeaderDisplayer interface {
	WillDisplayHeader(table Table, view View, section int)
}

// FooterDisplayer receives KindWillDisplayFooter.
type FooterDisplayer interface {
	WillDisplayFooter(table Table, view View, section int)
}

// CellEndDisplayer receives KindDidEndDisplayingCell.
type CellEndDisplayer interface {
	DidEndDisplayingCell(table Table, cell Cell, path IndexPath)
}

// HeaderEndDisplayer receives KindDidEndDisplayingHeader.
type HeaderEndDisplayer interface {
	DidEndDisplayingHeader(table Table, view View, section int)
}

// FooterEndDisplayer receives KindDidEndDisplayingFooter.
type FooterEndDisplayer interface {
	DidEndDisplayingFooter(table Table, view View, section int)
}

// CapabilityReporter narrows the kinds a delegate advertises.
// It is consulted only for kinds whose interface the delegate implements.
type CapabilityReporter interface {
	Supports(kind Kind) bool
}

// Display is the complete set of display notifications.
// Propagator implements it, as does any delegate that wants every kind.
type Display interface {
	CellDisplayer
	HeaderDisplayer
	FooterDisplayer
	CellEndDisplayer
	HeaderEndDisplayer
	FooterEndDisplayer
}
