package cascade

// Propagator forwards display notifications to the child selected by the
// current PropagationMode. It is itself a Delegate with every capability,
// so propagators nest.
type Propagator struct {
	index    int
	mode     PropagationMode
	registry *Registry
	observer Observer
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithMode sets the initial propagation mode. The default is ModeRow.
func WithMode(mode PropagationMode) Option {
	return func(p *Propagator) {
		p.mode = mode
	}
}

// WithObserver sets the observer told about each dispatch cycle.
func WithObserver(obs Observer) Option {
	return func(p *Propagator) {
		p.observer = obs
	}
}

// New creates a propagator at the given index in its own parent.
func New(index int, children []Delegate, opts ...Option) (*Propagator, error) {
	reg, err := NewRegistry(children...)
	if err != nil {
		return nil, err
	}

	p := &Propagator{
		index:    index,
		mode:     ModeRow,
		registry: reg,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Index implements Delegate.
func (p *Propagator) Index() int {
	return p.index
}

// Mode returns the current propagation mode.
func (p *Propagator) Mode() PropagationMode {
	return p.mode
}

// SetMode changes the propagation mode for subsequent notifications.
func (p *Propagator) SetMode(mode PropagationMode) {
	p.mode = mode
}

// SetObserver replaces the observer. A nil observer disables observation.
func (p *Propagator) SetObserver(obs Observer) {
	p.observer = obs
}

// Observer returns the current observer, or nil.
func (p *Propagator) Observer() Observer {
	return p.observer
}

// Children returns the registered children in position order.
func (p *Propagator) Children() []Delegate {
	return p.registry.Children()
}

// SetChildren replaces the whole registry. On error the previous
// children stay registered.
func (p *Propagator) SetChildren(children []Delegate) error {
	reg, err := NewRegistry(children...)
	if err != nil {
		return err
	}
	p.registry = reg
	return nil
}

// WillDisplayCell implements CellDisplayer.
func (p *Propagator) WillDisplayCell(table Table, cell Cell, path IndexPath) {
	child, out := p.route(KindWillDisplayCell, path)
	if out.Result == Forwarded {
		child.(CellDisplayer).WillDisplayCell(table, cell, path)
	}
	p.observe(out)
}

// WillDisplayHeader implements HeaderDisplayer.
func (p *Propagator) WillDisplayHeader(table Table, view View, section int) {
	child, out := p.route(KindWillDisplayHeader, SectionPath(section))
	if out.Result == Forwarded {
		child.(HeaderDisplayer).WillDisplayHeader(table, view, section)
	}
	p.observe(out)
}

// WillDisplayFooter implements FooterDisplayer.
func (p *Propagator) WillDisplayFooter(table Table, view View, section int) {
	child, out := p.route(KindWillDisplayFooter, SectionPath(section))
	if out.Result == Forwarded {
		child.(FooterDisplayer).WillDisplayFooter(table, view, section)
	}
	p.observe(out)
}

// DidEndDisplayingCell implements CellEndDisplayer.
func (p *Propagator) DidEndDisplayingCell(table Table, cell Cell, path IndexPath) {
	child, out := p.route(KindDidEndDisplayingCell, path)
	if out.Result == Forwarded {
		child.(CellEndDisplayer).DidEndDisplayingCell(table, cell, path)
	}
	p.observe(out)
}

// DidEndDisplayingHeader implements HeaderEndDisplayer.
func (p *Propagator) DidEndDisplayingHeader(table Table, view View, section int) {
	child, out := p.route(KindDidEndDisplayingHeader, SectionPath(section))
	if out.Result == Forwarded {
		child.(HeaderEndDisplayer).DidEndDisplayingHeader(table, view, section)
	}
	p.observe(out)
}

// DidEndDisplayingFooter implements FooterEndDisplayer.
func (p *Propagator) DidEndDisplayingFooter(table Table, view View, section int) {
	child, out := p.route(KindDidEndDisplayingFooter, SectionPath(section))
	if out.Result == Forwarded {
		child.(FooterEndDisplayer).DidEndDisplayingFooter(table, view, section)
	}
	p.observe(out)
}

// Preview returns the outcome a notification of kind at path would have
// under the current mode and children. Nothing is forwarded or observed.
func (p *Propagator) Preview(kind Kind, path IndexPath) Outcome {
	_, out := p.route(kind, path)
	return out
}

// route runs validation, selection and the capability gate for one cycle.
// The returned child is non-nil only when the outcome is Forwarded.
func (p *Propagator) route(kind Kind, path IndexPath) (Delegate, Outcome) {
	mode := p.mode
	out := Outcome{
		Parent: p.index,
		Kind:   kind,
		Path:   path,
		Mode:   mode,
		Target: -1,
	}

	if !kind.HasRow() && mode == ModeRow {
		out.Result = DroppedModeMismatch
		return nil, out
	}

	if !Valid(mode, path, p.registry.Len()) {
		out.Result = DroppedOutOfRange
		return nil, out
	}

	child := Select(mode, path, p.registry)
	out.Target = mode.selector(path)

	if !Supports(child, kind) {
		out.Result = DroppedUnsupported
		return nil, out
	}

	out.Result = Forwarded
	return child, out
}

func (p *Propagator) observe(out Outcome) {
	if p.observer != nil {
		p.observer.Observe(out)
	}
}
