// Package config describes a single baus invocation and where its cache lives.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/baus/internal/store"
)

// ErrInvalidConfig indicates a configuration value or profile file is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultName is the profile used when --name is not given.
const DefaultName = "baus"

// Action selects what a run does with its input.
type Action string

const (
	ActionSort Action = "sort"
	ActionSave Action = "save"
)

// ValueKind selects how Save computes a new score.
type ValueKind string

const (
	// ValueCount increments the stored score by one.
	ValueCount ValueKind = "count"
	// ValueTimestamp sets the score to the current Unix time in seconds.
	ValueTimestamp ValueKind = "timestamp"
)

// ValidValueKinds lists the accepted --value arguments.
var ValidValueKinds = []ValueKind{ValueCount, ValueTimestamp}

// ParseValueKind validates a --value argument.
func ParseValueKind(s string) (ValueKind, error) {
	for _, v := range ValidValueKinds {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: value %q must be one of %v", ErrInvalidConfig, s, ValidValueKinds)
}

// Config is the validated, immutable configuration for one run.
type Config struct {
	// Name selects the cache file.
	Name string

	Action Action

	// Value is only meaningful for ActionSave.
	Value ValueKind

	// Desc and Cleanup are only meaningful for ActionSort.
	Desc    bool
	Cleanup bool

	Backend store.Kind

	// CacheDir overrides the platform cache directory when non-empty.
	CacheDir string

	// Normalize applies Unicode NFC to every input line before use.
	Normalize bool
}

// Default returns the built-in configuration for action.
func Default(action Action) Config {
	return Config{
		Name:    DefaultName,
		Action:  action,
		Value:   ValueCount,
		Backend: store.KindJSON,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}

	switch c.Action {
	case ActionSort:
	case ActionSave:
		if c.Desc || c.Cleanup {
			return fmt.Errorf("%w: desc and cleanup only apply to sort", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidConfig, c.Action)
	}

	if _, err := ParseValueKind(string(c.Value)); err != nil {
		return err
	}
	if _, err := store.ParseKind(string(c.Backend)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateName checks that name can be used as a cache file name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	case name == "." || name == "..":
		return fmt.Errorf("%w: name %q is reserved", ErrInvalidConfig, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: name %q must not contain path separators", ErrInvalidConfig, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: name must not contain NUL", ErrInvalidConfig)
	}
	return nil
}
