// Package preflight checks that the configured inputs can be read and the
// output locations written before a conversion is attempted.
//
// The CLI "pemm config validate" command runs RunAll and prints one status
// line per check. Database checks are skipped when snapshots are disabled.
package preflight
