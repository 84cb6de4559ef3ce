package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/roach88/baus/internal/score"
)

// Kind selects the on-disk format of a cache file.
type Kind string

const (
	KindJSON   Kind = "json"
	KindSQLite Kind = "sqlite"
)

// ValidKinds lists the supported backend kinds.
var ValidKinds = []Kind{KindJSON, KindSQLite}

// Backend persists a single score mapping.
type Backend interface {
	// Path returns the cache file location.
	Path() string

	// Exists reports whether the cache file is present.
	Exists() (bool, error)

	// Initialize creates an empty store if none exists. Idempotent.
	Initialize(ctx context.Context) error

	// Load reads the full mapping into memory.
	Load(ctx context.Context) (score.Scores, error)

	// Save overwrites the stored mapping with s in full.
	Save(ctx context.Context, s score.Scores) error

	// Close releases any resources held by the backend.
	Close() error
}

// ParseKind validates a backend name.
func ParseKind(name string) (Kind, error) {
	for _, k := range ValidKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownBackend, name, ValidKinds)
}

// FileName returns the cache file name for a profile stored with kind.
// JSON caches use the bare profile name; SQLite caches add a .db suffix.
func FileName(kind Kind, name string) string {
	if kind == KindSQLite {
		return name + ".db"
	}
	return name
}

// New creates a backend of the given kind for path.
func New(kind Kind, path string) (Backend, error) {
	switch kind {
	case KindJSON:
		return NewFileStore(path), nil
	case KindSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, kind)
	}
}

// Open initializes b if its cache file is missing, then loads it.
func Open(ctx context.Context, b Backend) (score.Scores, error) {
	exists, err := b.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := b.Initialize(ctx); err != nil {
			return nil, err
		}
	}
	return b.Load(ctx)
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
}
