// Package app assembles a propagator, its children and a simulated table
// from a config.Config, and applies configuration reloads.
//
// An App is owned by a single goroutine. Notifications, mode changes and
// reloads must all be issued from that goroutine.
package app
