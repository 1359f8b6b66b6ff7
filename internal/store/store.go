// Package store persists named JSON documents. The billing state is saved as
// a handful of keys that are always written together.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrKeyNotFound is returned by Get for a key that was never written
var ErrKeyNotFound = errors.New("key not found")

var validKey = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// Store is a key to JSON document store
type Store interface {
	// Get returns the raw JSON stored under key
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes every value; readers never observe a partial batch
	Put(ctx context.Context, values map[string][]byte) error
	Close() error
}

func checkKeys(values map[string][]byte) error {
	for key := range values {
		if !validKey.MatchString(key) {
			return fmt.Errorf("invalid store key %q", key)
		}
	}
	return nil
}

// MemoryStore keeps documents in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Put(ctx context.Context, values map[string][]byte) error {
	if err := checkKeys(values); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = append([]byte(nil), value...)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
