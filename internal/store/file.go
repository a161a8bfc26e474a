package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File stores each namespace as a JSON file in a directory.
type File struct {
	dir string
}

// OpenFile uses dir, creating it if needed.
func OpenFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// path maps a namespace to a file name safe on every platform.
func (f *File) path(namespace string) string {
	name := strings.NewReplacer(":", "_", "/", "_", `\`, "_").Replace(namespace)
	return filepath.Join(f.dir, name+".json")
}

// Get implements Backend.
func (f *File) Get(_ context.Context, namespace string) ([]byte, error) {
	data, err := os.ReadFile(f.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", namespace, err)
	}
	return data, nil
}

// Put writes to a temp file in the same directory and renames it over the
// target, so a crash never leaves a half-written snapshot.
func (f *File) Put(_ context.Context, namespace string, data []byte) error {
	target := f.path(namespace)
	tmp, err := os.CreateTemp(f.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing snapshot %q: %w", namespace, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing snapshot %q: %w", namespace, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replacing snapshot %q: %w", namespace, err)
	}
	return nil
}

// Delete implements Backend.
func (f *File) Delete(_ context.Context, namespace string) error {
	err := os.Remove(f.path(namespace))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting snapshot %q: %w", namespace, err)
	}
	return nil
}

// SavedAt returns the snapshot file's modification time.
func (f *File) SavedAt(_ context.Context, namespace string) (time.Time, error) {
	info, err := os.Stat(f.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Close implements Backend.
func (f *File) Close() error { return nil }
