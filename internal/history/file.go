package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// DirName is the subdirectory of the storage root that holds date partitions.
	DirName = "history"
	// FileName is the file holding one bucket inside its date partition.
	FileName = "ipos.json"
)

// FileBackend stores each bucket as <root>/history/<key>/ipos.json.
type FileBackend struct {
	dir string
}

// NewFileBackend creates the history directory under root if needed.
func NewFileBackend(root string) (*FileBackend, error) {
	dir := filepath.Join(root, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir %s: %w", dir, err)
	}
	slog.Debug("History directory ready", slog.String("dir", dir))
	return &FileBackend{dir: dir}, nil
}

// Dir returns the history directory.
func (b *FileBackend) Dir() string { return b.dir }

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key, FileName)
}

func (b *FileBackend) Put(_ context.Context, key string, value []byte) (string, error) {
	if err := os.MkdirAll(filepath.Join(b.dir, key), 0o755); err != nil {
		return "", fmt.Errorf("creating partition %s: %w", key, err)
	}
	p := b.path(key)
	if err := os.WriteFile(p, value, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", p, err)
	}
	return p, nil
}

func (b *FileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := os.ReadFile(b.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading bucket %s: %w", key, err)
	}
	return v, true, nil
}

// Keys lists the partition directories. Plain files are ignored.
func (b *FileBackend) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", b.dir, err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}
