// Package incipit holds the known incipits of story instances, keyed by
// canonical story id, collection abbreviation and manuscript id.
//
// The table is loaded once from a headerless five-column CSV
// (story id, incipit, collection, manuscript id, unused) and is read-only
// afterwards. Lookups are total: any missing key resolves to "".
package incipit
