package cascade

// Supports reports whether d can receive notifications of the given kind.
// A delegate that implements nothing simply reports false.
func Supports(d Delegate, kind Kind) bool {
	if d == nil || !implements(d, kind) {
		return false
	}
	if r, ok := d.(CapabilityReporter); ok {
		return r.Supports(kind)
	}
	return true
}

// Capabilities returns every kind d supports, in declaration order.
func Capabilities(d Delegate) []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		if Supports(d, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func implements(d Delegate, kind Kind) bool {
	var ok bool
	switch kind {
	case KindWillDisplayCell:
		_, ok = d.(CellDisplayer)
	case KindWillDisplayHeader:
		_, ok = d.(HeaderDisplayer)
	case KindWillDisplayFooter:
		_, ok = d.(FooterDisplayer)
	case KindDidEndDisplayingCell:
		_, ok = d.(CellEndDisplayer)
	case KindDidEndDisplayingHeader:
		_, ok = d.(HeaderEndDisplayer)
	case KindDidEndDisplayingFooter:
		_, ok = d.(FooterEndDisplayer)
	}
	return ok
}
