// Package grammar recognizes the small reference language of the Macomber
// handlist: story identifier lines (MAC0041-C2), folio locations (18v-19v,
// 65rv, 20b bis) and manuscript references with an optional story order and
// folio range (41.6 (18v-19v), ZBNE 62-30, 2233(26a)).
//
// Recognizers are anchored at the start of their input and report the
// captured pieces; callers decide how to combine them.
package grammar
