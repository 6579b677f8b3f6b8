// Package store keeps snapshots of conversion runs in SQLite.
//
// Each run records its inputs, the three output tables and the unparsed
// references, so earlier conversions can be compared after the handlist is
// edited. The schema is versioned; a database written by a different
// version is rejected with ErrSchemaMismatch rather than migrated.
package store
