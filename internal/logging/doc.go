// Package logging assembles structured slog loggers for the pemm CLI.
//
// It owns the console and JSON handlers, parses level and format settings,
// and exposes attribute helpers so every component emits the same keys
// (component, run_id, collection, event_type). The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Log output goes to stderr by default so that command output on stdout
// (tables, JSON, diagnostics) stays machine readable.
package logging
