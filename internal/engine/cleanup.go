package engine

import (
	"context"

	"github.com/roach88/baus/internal/score"
	"github.com/roach88/baus/internal/store"
)

// Prune restricts s to exactly the keys in retained. Tracked keys that are
// not retained are dropped; retained lines that are not yet tracked are
// added with score 0.
func Prune(s score.Scores, retained []string) {
	keep := make(map[string]struct{}, len(retained))
	for _, line := range retained {
		keep[line] = struct{}{}
	}

	for _, key := range s.Keys() {
		if _, ok := keep[key]; !ok {
			s.Delete(key)
		}
	}
	for line := range keep {
		if !s.Has(line) {
			s.Set(line, 0)
		}
	}
}

// Cleanup prunes s to retained and persists the result immediately.
func Cleanup(ctx context.Context, b store.Backend, s score.Scores, retained []string) error {
	Prune(s, retained)
	return b.Save(ctx, s)
}
