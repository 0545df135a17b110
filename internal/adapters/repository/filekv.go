package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileKV persists values as files under a directory, one file per key.
// Saves go through a temp file and rename so readers never observe a
// partial write.
type FileKV struct {
	dir string
}

// NewFileKV creates a file-backed KV rooted at dir, creating it if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create kv directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Load reads the value for key. ok is false when the key was never saved.
func (f *FileKV) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, true, nil
}

// Save replaces the value for key atomically.
func (f *FileKV) Save(ctx context.Context, key string, value []byte) error {
	target := f.path(key)

	tmp, err := os.CreateTemp(f.dir, key+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
