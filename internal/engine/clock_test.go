package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int64
	}{
		{"epoch", time.Unix(0, 0), 0},
		{"truncates sub-second", time.Unix(1_700_000_000, 999_999_999), 1_700_000_000},
		{"non-UTC location", time.Unix(42, 0).In(time.FixedZone("east", 9*3600)), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unixSeconds(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnixSeconds_BeforeEpoch(t *testing.T) {
	before := time.Unix(0, 0).Add(-time.Nanosecond)

	_, err := unixSeconds(before)
	require.Error(t, err)
	assert.True(t, IsClockError(err))

	var ce *ClockError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Time.Equal(before))
}

func TestClockFunc(t *testing.T) {
	fixed := time.Unix(1234, 0)
	var c Clock = ClockFunc(func() time.Time { return fixed })
	assert.True(t, c.Now().Equal(fixed))
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := SystemClock{}.Now()
	assert.False(t, got.Before(before))
}
