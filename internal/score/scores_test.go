package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultsToZero(t *testing.T) {
	s := Scores{"horse": 2}

	assert.Equal(t, int64(2), s.Get("horse"))
	assert.Equal(t, int64(0), s.Get("hamster"))
	assert.False(t, s.Has("hamster"), "Get must not materialize absent keys")
	assert.Equal(t, 1, s.Len())
}

func TestGetOnNil(t *testing.T) {
	var s Scores
	assert.Equal(t, int64(0), s.Get("anything"))
	assert.Equal(t, 0, s.Len())
}

func TestSetOverwrites(t *testing.T) {
	s := New()
	s.Set("a", 1)
	s.Set("a", 5)
	s.Set("", -3)

	assert.Equal(t, int64(5), s.Get("a"))
	assert.Equal(t, int64(-3), s.Get(""))
	assert.True(t, s.Has(""))
}

func TestDelete(t *testing.T) {
	s := Scores{"a": 1, "b": 2}
	s.Delete("a")
	s.Delete("missing")

	assert.Equal(t, Scores{"b": 2}, s)
}

func TestKeysSortedUTF16(t *testing.T) {
	// U+1F600 encodes as a surrogate pair (0xD83D...), which sorts before
	// U+FFFD in UTF-16 but after it in UTF-8.
	s := Scores{"zebra": 1, "alpha": 2, "\U0001F600": 3, "\uFFFD": 4}

	assert.Equal(t, []string{"alpha", "zebra", "\U0001F600", "\uFFFD"}, s.Keys())
}

func TestClone(t *testing.T) {
	s := Scores{"a": 1}
	c := s.Clone()
	c.Set("a", 2)
	c.Set("b", 3)

	assert.Equal(t, int64(1), s.Get("a"))
	assert.False(t, s.Has("b"))

	var empty Scores
	clone := empty.Clone()
	require.NotNil(t, clone)
	clone.Set("x", 1)
}

func TestEqual(t *testing.T) {
	assert.True(t, Scores{"a": 1}.Equal(Scores{"a": 1}))
	assert.True(t, Scores{}.Equal(nil))
	assert.False(t, Scores{"a": 1}.Equal(Scores{"a": 2}))
	assert.False(t, Scores{"a": 0}.Equal(Scores{"b": 0}))
	assert.False(t, Scores{"a": 0}.Equal(Scores{}))
}
