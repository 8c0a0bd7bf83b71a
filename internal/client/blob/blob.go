// Package blob implements the file-blob half of the local persistent store:
// a cache root with a documents/ subtree for downloaded files and a maps/
// subtree reserved for map tile assets.
package blob

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wayfarer-app/wayfarer/internal/filex"
)

const (
	documentsDirName = "documents"
	mapsDirName      = "maps"
)

// Store owns the on-disk cache layout. All paths handed out by Store stay
// under its root.
type Store struct {
	root string
}

// New creates (or reuses) the cache layout rooted at root.
func New(root string) (*Store, error) {
	s := &Store{root: root}
	if err := s.ensureLayout(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureLayout() error {
	for _, dir := range []string{s.root, s.DocumentsDir(), s.MapsDir()} {
		if err := filex.EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Root() string          { return s.root }
func (s *Store) DocumentsDir() string  { return filepath.Join(s.root, documentsDirName) }
func (s *Store) MapsDir() string       { return filepath.Join(s.root, mapsDirName) }

// DocumentPath returns the deterministic local path for a document id and
// its original file name.
func (s *Store) DocumentPath(id, fileName string) string {
	return filepath.Join(s.DocumentsDir(), fmt.Sprintf("%s_%s", id, filepath.Base(fileName)))
}

// Stat returns the byte size of the file at path. A missing file is reported
// via fs.ErrNotExist so callers can self-heal stale index entries.
func (s *Store) Stat(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("stat %s: is a directory", path)
	}
	return info.Size(), nil
}

// Exists reports whether a regular file is present at path.
func (s *Store) Exists(path string) bool {
	_, err := s.Stat(path)
	return err == nil
}

// Remove deletes the file at path. Removing an absent file is not an error.
func (s *Store) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// DocumentsSize and MapsSize walk the respective subtrees and sum file sizes.
func (s *Store) DocumentsSize() (int64, error) { return filex.DirSize(s.DocumentsDir()) }
func (s *Store) MapsSize() (int64, error)      { return filex.DirSize(s.MapsDir()) }

// Clear removes the whole cache root and re-creates the expected layout.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("clear %s: %w", s.root, err)
	}
	return s.ensureLayout()
}
