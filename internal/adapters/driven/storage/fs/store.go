// Package fs provides a directory-backed artifact store.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Store persists versioned artifacts as plain files in one directory.
// It never overwrites: version numbers are assigned upstream, and a name
// collision here means the versioning contract was violated.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory path.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the base names of all regular files in the store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read output directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Write stores data under name, refusing to replace an existing file.
func (s *Store) Write(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)

	// O_EXCL enforces the append-only versioning contract at the
	// filesystem level.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}
	return path, nil
}

// Read returns the contents of the named file.
func (s *Store) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	return data, nil
}

// Remove deletes the named file.
func (s *Store) Remove(name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("remove artifact %s: %w", name, err)
	}
	return nil
}
