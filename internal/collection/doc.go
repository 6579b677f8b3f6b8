// Package collection maps the repository abbreviations used in the Macomber
// handlist (CRA, EMML, PEth, ...) to the display names used in the
// spreadsheet.
//
// The mapping has changed between handlist revisions, so the embedded table
// is only a default: configuration may override display names and the lists
// of single-page and field collections. A Registry is immutable once built.
package collection
