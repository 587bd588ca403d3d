// Package ui is an interactive terminal front end for the cascade demo.
//
// The screen shows the visible lines of the simulated table with the
// child each line routes to, and below it the most recent dispatch
// outcomes:
//
//	 mode: row  children: 2  lines 0-9 of 14
//	 == First ==             (section only)
//	 row 0                   -> 0 (unsupported)
//	 row 1                   -> 1
//	 ...
//	─ activity
//	 will-display-cell  1:0  row  -> 1  forwarded
//
// Keys: arrows and PgUp/PgDn scroll, Home/End jump, m toggles the
// propagation mode, r reloads the table and q or Esc quits. Configuration
// changes delivered by a config.Watcher are applied between key events
// on the same goroutine, so the propagator never sees concurrent
// notifications.
package ui
