package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/baus/internal/store"
)

// appDir is the subdirectory baus uses under the platform cache and config dirs.
const appDir = "baus"

// ResolveCacheDir returns the directory holding cache files: c.CacheDir if set,
// otherwise <user cache dir>/baus.
func (c Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: locate cache directory: %v", store.ErrIO, err)
	}
	return filepath.Join(base, appDir), nil
}

// CachePath resolves the cache file for this configuration and creates its
// directory if it does not exist.
func (c Config) CachePath() (string, error) {
	dir, err := c.ResolveCacheDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create cache directory %s: %v", store.ErrIO, dir, err)
	}
	return filepath.Join(dir, store.FileName(c.Backend, c.Name)), nil
}

// DefaultFilePath returns <user config dir>/baus/config.yaml.
func DefaultFilePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDir, "config.yaml"), nil
}
