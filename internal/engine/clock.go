package engine

import "time"

// Clock supplies wall-clock time for timestamp scores.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// unixSeconds converts t to seconds since the Unix epoch. A time before the
// epoch means the host clock is broken and is reported as a ClockError.
func unixSeconds(t time.Time) (int64, error) {
	if t.Before(time.Unix(0, 0)) {
		return 0, &ClockError{Time: t}
	}
	return t.Unix(), nil
}
