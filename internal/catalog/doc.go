// Package catalog defines the relational records produced by a handlist
// conversion (canonical stories, manuscripts, story instances) and the
// accumulator that owns them for one run.
//
// Each record projects itself onto the spreadsheet field names through Row;
// column order is decided later by the output schema.
package catalog
