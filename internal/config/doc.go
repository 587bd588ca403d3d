// Package config loads the cascade configuration.
//
// Configuration comes from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← CASCADE_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← cascade.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[propagation]
//	mode = "section"
//
//	[table]
//	height = 12
//
//	[[table.sections]]
//	rows = 4
//	header = true
//	title = "Inbox"
//
//	[[children]]
//	index = 0
//	type = "bare"
//
//	[[children]]
//	index = 1
//	type = "lua"
//	script = "children/highlight.lua"
//
// Child types are bare, complete, selective (with kinds), lua (with
// script) and propagator (with its own mode and children).
//
// Watcher reloads the file when it changes. It only delivers new values;
// applying them is up to the owner of the propagator.
package config
