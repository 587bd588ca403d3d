// Package script provides child delegates implemented in Lua.
//
// A script advertises a notification kind by defining a global function
// whose name is the kind name with underscores:
//
//	function will_display_cell(table, cell, row, section)
//	  log("cell " .. row .. ":" .. section)
//	end
//
//	function will_display_header(table, view, section)
//	end
//
// Kinds without a function are unsupported, so the parent drops them
// without calling into Lua. Table, cell and view arguments are opaque
// userdata values that wrap the Go objects unchanged.
//
// Scripts run in a sandboxed state: only the base, table, string and math
// libraries are available, and dofile, loadfile, load and loadstring are
// removed. A log(message) function writes to the delegate's logger.
//
// Errors raised while handling a notification are passed to the error
// handler and never escape the dispatch cycle. A Delegate serializes calls
// into its Lua state.
package script
