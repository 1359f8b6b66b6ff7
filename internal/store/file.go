package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore keeps one JSON file per key under a base directory
type FileStore struct {
	mu       sync.Mutex
	basePath string
}

// NewFileStore creates a file store, creating the directory if needed
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put stages every value in a temporary file first and only renames once all
// of them were written, so a failed write leaves the previous files intact
func (s *FileStore) Put(ctx context.Context, values map[string][]byte) error {
	if err := checkKeys(values); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	staged := make(map[string]string, len(keys))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			cleanup()
			return err
		}
		tmp, err := os.CreateTemp(s.basePath, key+".*.tmp")
		if err != nil {
			cleanup()
			return fmt.Errorf("failed to stage %s: %w", key, err)
		}
		staged[key] = tmp.Name()

		if _, err := tmp.Write(values[key]); err != nil {
			tmp.Close()
			cleanup()
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	for _, key := range keys {
		if err := os.Rename(staged[key], s.path(key)); err != nil {
			cleanup()
			return fmt.Errorf("failed to commit %s: %w", key, err)
		}
		delete(staged, key)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
