package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrStorageUnavailable wraps backend I/O failures. The in-memory
// session is never touched when it is returned.
var ErrStorageUnavailable = errors.New("store: storage unavailable")

// Backend is the flat key-value blob store the draft collection lives
// in. ReadBlob returns (nil, nil) when nothing has been written yet;
// absence of the collection is an empty collection, not an error.
type Backend interface {
	ReadBlob(ctx context.Context) ([]byte, error)
	WriteBlob(ctx context.Context, data []byte) error
}

// FileBackend stores the collection blob as a single file, written
// atomically via a temp file and rename.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) ReadBlob(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return data, nil
}

func (f *FileBackend) WriteBlob(ctx context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".inkpad-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
