package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/baus/internal/score"
)

// WriteScores writes s as a JSON cache file named name under dir and
// returns its path.
func WriteScores(t testing.TB, dir, name string, s score.Scores) string {
	t.Helper()

	data, err := score.Marshal(s)
	if err != nil {
		t.Fatalf("marshal scores: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write scores: %v", err)
	}
	return path
}

// ReadScores loads the JSON cache file at path.
func ReadScores(t testing.TB, path string) score.Scores {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scores: %v", err)
	}
	s, err := score.Unmarshal(data)
	if err != nil {
		t.Fatalf("parse scores: %v", err)
	}
	return s
}
