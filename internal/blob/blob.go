// Package blob persists large clipboard payloads as individual files in a
// single directory. Two independent stores exist at runtime: one for text
// overflow bodies (keyed by item id with a .txt extension) and one for
// image blobs (keyed by a generated filename).
//
// Deletion is best-effort by contract: a file already removed by a
// concurrent garbage-collection pass is an expected race, not a bug, so
// Delete never returns an error to the caller.
package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/appfs"
)

// Store reads and writes blobs inside one directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the absolute path for a blob name.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// Put writes data under name with an atomic replace, so readers never
// observe a partially written blob.
func (s *Store) Put(name string, data []byte) error {
	if err := appfs.WriteFileAtomic(s.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	return nil
}

// Get returns the blob's contents, or (nil, nil) if it does not exist.
// A missing blob is an expected state after eviction races; callers fall
// back to previews or placeholders.
func (s *Store) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", name, err)
	}
	return data, nil
}

// Delete removes the blob best-effort. A missing file is not an error;
// any other failure is logged and swallowed so deletion can never crash
// the caller.
func (s *Store) Delete(name string) {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to delete blob", "dir", s.dir, "name", name, "error", err)
	}
}

// List returns the names of all blobs currently in the directory.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list blob directory %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
