// Package handlist scans the Macomber handlist text into a catalog.
//
// The handlist is a sequence of records. Each record opens with a story id
// line (MAC0001, MAC0012-C3) followed by "Field: value" lines. Title, Text
// and English translation fill the canonical story; collection-named fields
// and the combined MSS field carry manuscript references which are handed to
// the reference parser. Anything else is ignored.
package handlist
