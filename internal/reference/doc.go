// Package reference turns the manuscript field of a handlist entry into story
// instances.
//
// A field such as "41.29 (61r-62r); 43.26 (33r-34v)" is split into
// references; each reference is either a multi-location reference
// ("4205 (25v + 51r + 26r)") or a single manuscript reference
// ("41.8 (21r-30v)"). Multi-location handling is tried first because the two
// forms overlap. References that match neither form are returned as
// diagnostics instead of failing the field.
package reference
