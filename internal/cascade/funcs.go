package cascade

// Funcs is a delegate assembled from optional function fields.
// A nil field means the kind is not supported.
type Funcs struct {
	Position int

	OnWillDisplayCell        func(table Table, cell Cell, path IndexPath)
	OnWillDisplayHeader      func(table Table, view View, section int)
	OnWillDisplayFooter      func(table Table, view View, section int)
	OnDidEndDisplayingCell   func(table Table, cell Cell, path IndexPath)
	OnDidEndDisplayingHeader func(table Table, view View, section int)
	OnDidEndDisplayingFooter func(table Table, view View, section int)
}

// Index implements Delegate.
func (f *Funcs) Index() int {
	return f.Position
}

// Supports implements CapabilityReporter.
func (f *Funcs) Supports(kind Kind) bool {
	switch kind {
	case KindWillDisplayCell:
		return f.OnWillDisplayCell != nil
	case KindWillDisplayHeader:
		return f.OnWillDisplayHeader != nil
	case KindWillDisplayFooter:
		return f.OnWillDisplayFooter != nil
	case KindDidEndDisplayingCell:
		return f.OnDidEndDisplayingCell != nil
	case KindDidEndDisplayingHeader:
		return f.OnDidEndDisplayingHeader != nil
	case KindDidEndDisplayingFooter:
		return f.OnDidEndDisplayingFooter != nil
	default:
		return false
	}
}

func (f *Funcs) WillDisplayCell(table Table, cell Cell, path IndexPath) {
	if f.OnWillDisplayCell != nil {
		f.OnWillDisplayCell(table, cell, path)
	}
}

func (f *Funcs) WillDisplayHeader(table Table, view View, section int) {
	if f.OnWillDisplayHeader != nil {
		f.OnWillDisplayHeader(table, view, section)
	}
}

func (f *Funcs) WillDisplayFooter(table Table, view View, section int) {
	if f.OnWillDisplayFooter != nil {
		f.OnWillDisplayFooter(table, view, section)
	}
}

func (f *Funcs) DidEndDisplayingCell(table Table, cell Cell, path IndexPath) {
	if f.OnDidEndDisplayingCell != nil {
		f.OnDidEndDisplayingCell(table, cell, path)
	}
}

func (f *Funcs) DidEndDisplayingHeader(table Table, view View, section int) {
	if f.OnDidEndDisplayingHeader != nil {
		f.OnDidEndDisplayingHeader(table, view, section)
	}
}

func (f *Funcs) DidEndDisplayingFooter(table Table, view View, section int) {
	if f.OnDidEndDisplayingFooter != nil {
		f.OnDidEndDisplayingFooter(table, view, section)
	}
}
