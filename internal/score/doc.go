// Package score holds the in-memory score mapping used by baus.
//
// A Scores value maps a line of text to a signed 64-bit score. An absent
// key is equivalent to a score of 0 and is never materialized until it is
// touched with Set.
//
// # Serialization
//
// Scores are persisted as canonical JSON (RFC 8785 key ordering, no HTML
// escaping, integers only). Keys are written byte-for-byte without Unicode
// normalization so that Marshal followed by Unmarshal yields an identical
// mapping.
package score
