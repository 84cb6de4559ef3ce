package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownAction indicates a Runner was asked for an action it does not handle.
var ErrUnknownAction = errors.New("unknown action")

// ClockError reports a system clock set before the Unix epoch.
// It is a host fault, not bad input, and callers treat it as fatal.
type ClockError struct {
	Time time.Time
}

// Error implements the error interface.
func (e *ClockError) Error() string {
	return fmt.Sprintf("system clock is before the Unix epoch: %s", e.Time.UTC().Format(time.RFC3339))
}

// IsClockError returns true if err is or wraps a ClockError.
func IsClockError(err error) bool {
	var ce *ClockError
	return errors.As(err, &ce)
}
