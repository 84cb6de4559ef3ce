package store

import (
	"errors"

	"github.com/roach88/baus/internal/score"
)

// Sentinel errors for store operations.
var (
	// ErrIO indicates the cache file could not be created, opened, read, or written.
	ErrIO = errors.New("cache i/o failed")

	// ErrFormat indicates the cache file contents are not a valid score mapping.
	// It is the same sentinel as score.ErrFormat so either can be matched.
	ErrFormat = score.ErrFormat

	// ErrUnknownBackend indicates an unsupported backend kind.
	ErrUnknownBackend = errors.New("unknown backend")
)

// IsIOError reports whether err is (or wraps) ErrIO.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsFormatError reports whether err is (or wraps) ErrFormat.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}
