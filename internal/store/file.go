package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/roach88/baus/internal/score"
)

// FileStore keeps the mapping as one canonical JSON object in a UTF-8 file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
// The parent directory must already exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Exists() (bool, error) {
	return fileExists(s.path)
}

// Initialize writes an empty mapping if the file does not exist.
// An existing file is left untouched.
func (s *FileStore) Initialize(_ context.Context) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	if _, err := f.WriteString("{}"); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (score.Scores, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	scores, err := score.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return scores, nil
}

// Save replaces the file contents with s. The new contents are written to a
// temp file in the same directory and renamed over the old file, so a failed
// write leaves the previous mapping intact.
func (s *FileStore) Save(_ context.Context, scores score.Scores) error {
	data, err := score.Marshal(scores)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	// CreateTemp uses 0600; match the mode Initialize creates files with.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrIO, s.path, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles between calls.
func (s *FileStore) Close() error {
	return nil
}
