// Package textutil provides small text cleanup helpers shared by the handlist
// and incipit readers.
//
// Handlist values and incipits are Ge'ez (Fidäl) text that arrives from
// several editors and export tools, so the same word may be encoded with
// different combining sequences. Clean folds every value to Unicode NFC and
// trims surrounding whitespace so lookups and CSV output compare equal.
package textutil
