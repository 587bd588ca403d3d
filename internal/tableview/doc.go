// Package tableview is a headless sectioned table that produces display
// notifications the way a scrolling table widget does.
//
// The table lays its data source out as one line per section header, row
// and section footer. A fixed-height window over those lines is visible.
// Whenever the window moves, is resized or is reloaded, the table tells its
// delegate which items stopped being visible (DidEndDisplaying*) and which
// items are about to become visible (WillDisplay*).
//
// Cell and view objects keep their identity for as long as the item stays
// visible. Objects that leave the window are recycled for items that enter
// it, so a delegate must not hold on to them after DidEndDisplaying.
//
// A Table is not safe for concurrent use.
package tableview
