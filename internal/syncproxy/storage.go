package syncproxy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// BlobStore persists the single serialized entity bundle.
type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// ErrNoBlob is returned by Load when nothing has been stored yet.
var ErrNoBlob = fmt.Errorf("no blob stored")

// FileStore stores the blob as a single file, written atomically via a
// temp file rename.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a file-backed blob store at path.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating blob directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Load reads the stored blob.
func (f *FileStore) Load(ctx context.Context) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNoBlob
	}
	return data, err
}

// Save replaces the stored blob.
func (f *FileStore) Save(ctx context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
