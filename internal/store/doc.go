// Package store persists score mappings for baus.
//
// A Backend owns one cache file. Two backends are provided:
//   - FileStore: a single canonical JSON object (the default)
//   - SQLiteStore: a SQLite database with one row per line
//
// # Lifecycle
//
// Callers initialize a missing store, load it fully into memory, mutate the
// in-memory score.Scores, and hand it back to Save. Save always replaces the
// complete mapping (never appends or merges) and is all-or-nothing: the JSON
// backend writes a temp file and renames it into place, the SQLite backend
// rewrites the table inside a single transaction.
//
// There is no locking across processes. Two concurrent invocations against
// the same cache file race on Save and the last writer wins.
package store
