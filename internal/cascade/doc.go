// Package cascade routes table display notifications from a parent delegate
// to one of its child delegates.
//
// A Propagator owns an ordered set of child delegates. Every notification it
// receives carries an IndexPath (row, section). The active PropagationMode
// decides which component of the path selects the child:
//
//   - ModeRow: the child at position path.Row receives the notification.
//   - ModeSection: the child at position path.Section receives it.
//
// The notification is forwarded only when the selected child implements the
// method for that notification kind. Everything else is dropped silently:
// an out of range selector, a child without the capability, or a
// section-only notification (headers and footers) while in ModeRow.
//
// # Capabilities
//
// A child advertises a notification kind by implementing the matching
// interface:
//
//	type greeter struct{ index int }
//
//	func (g *greeter) Index() int { return g.index }
//
//	func (g *greeter) WillDisplayCell(table cascade.Table, cell cascade.Cell, path cascade.IndexPath) {
//	    // ...
//	}
//
// Supports reports whether a delegate can receive a kind. Delegates built
// from function fields (Funcs) advertise only the fields that are set.
//
// # Cascading
//
// A Propagator implements every capability interface itself, so it can be
// registered as the child of another Propagator.
//
// # Concurrency
//
// Dispatch is synchronous. The mode and the registry must not be changed
// while a notification is being dispatched; hosts deliver notifications and
// configuration changes from a single goroutine.
package cascade
