// Package engine ranks lines by score and records usage.
//
// The engine has four parts:
//   - Rank: stable ascending sort by score, optionally reversed
//   - UpdateFirst: count or timestamp update of the first input line
//   - Prune/Cleanup: restrict the store to the lines just shown
//   - Runner: one load -> process -> save cycle for a config.Config
//
// Everything runs synchronously on the caller's goroutine. Scores are passed
// explicitly; there is no package-level state.
//
// Ordering rules:
//   - Absent lines score 0, so unseen lines come first in ascending order.
//   - Equal scores keep their input order (stable sort).
//   - Descending reverses the whole ascending result, tie order included.
//   - Repeated input lines are ranked and emitted independently.
package engine
