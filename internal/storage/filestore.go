// Package storage keeps uploaded image files on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes and removes files under a single root directory.
type FileStore struct {
	root string
}

// NewFileStore returns a store rooted at dir, creating it when missing.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %s: %w", dir, err)
	}
	return &FileStore{root: dir}, nil
}

// Root returns the directory files are stored in.
func (s *FileStore) Root() string {
	return s.root
}

// Path resolves name inside the root. Names with path separators are rejected.
func (s *FileStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.root, name), nil
}

// Save streams r into name and returns the number of bytes written. A
// partially written file is removed before returning an error.
func (s *FileStore) Save(name string, r io.Reader) (int64, error) {
	path, err := s.Path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", name, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", name, err)
	}
	return n, nil
}

// Remove deletes the named files. Files that are already gone are ignored;
// other failures are collected and returned together.
func (s *FileStore) Remove(names ...string) error {
	var errs []error
	for _, name := range names {
		path, err := s.Path(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
