package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps one file per key under a base directory. It is the
// zero-infrastructure backend and survives restarts, unlike a pure
// in-memory map.
type FileStore struct {
	mu   sync.Mutex
	base string
}

// NewFileStore creates the base directory if needed and returns the store.
func NewFileStore(base string) (*FileStore, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{base: base}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are fixed identifiers, but sanitize anyway so a stray separator
	// cannot escape the base directory.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.base, key+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
