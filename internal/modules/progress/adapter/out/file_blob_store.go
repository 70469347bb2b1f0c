package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	progressout "gothere/internal/modules/progress/port/out"
	"gothere/internal/platform/slug"
)

// FileBlobStore keeps one JSON file per key under dir.
type FileBlobStore struct {
	dir string
}

func NewFileBlobStore(dir string) progressout.BlobStore {
	return &FileBlobStore{dir: dir}
}

func (s *FileBlobStore) path(key string) string {
	return filepath.Join(s.dir, slug.Make(key)+".json")
}

func (s *FileBlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read blob %s: %w", key, err)
	}
	return payload, true, nil
}

// Set writes through a temp file and a rename so a crash never leaves a
// half-written blob behind.
func (s *FileBlobStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".blob-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close blob %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("commit blob %s: %w", key, err)
	}
	return nil
}
