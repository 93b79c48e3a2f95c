package blob

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps binary artifacts (design uploads, rendered mockups, generated
// images) under a media root on the local filesystem, the way the original
// deployment used a MEDIA_ROOT directory.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Store{root: root}, nil
}

// Save writes data under the relative path and returns that path. Write
// failures here mean the underlying storage is gone and are fatal to the
// request.
func (s *Store) Save(relPath string, data []byte) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", relPath, err)
	}
	return relPath, nil
}

// Read returns the blob stored at the relative path.
func (s *Store) Read(relPath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", relPath, err)
	}
	return data, nil
}

// Exists reports whether a blob is present at the relative path.
func (s *Store) Exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(relPath)))
	return err == nil
}
