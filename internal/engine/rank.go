package engine

import (
	"slices"

	"github.com/roach88/baus/internal/score"
)

// Rank returns lines ordered by ascending score. Ties keep their relative
// input order. With descending set the ascending result is reversed as a
// whole, which also reverses tie order.
//
// Rank never modifies lines or s.
func Rank(lines []string, s score.Scores, descending bool) []string {
	ranked := slices.Clone(lines)
	slices.SortStableFunc(ranked, func(a, b string) int {
		sa, sb := s.Get(a), s.Get(b)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})
	if descending {
		slices.Reverse(ranked)
	}
	return ranked
}
