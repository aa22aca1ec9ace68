// Package kv provides the durable key-value store implementations used for
// session persistence.
package kv

import (
	"sync"

	"github.com/kombee/portal/core"
)

type memoryStore struct {
	mu    sync.RWMutex
	table map[string]string
}

var _ core.KeyValueStore = (*memoryStore)(nil) // interface compliance check

// NewMemoryStore returns a volatile in-memory store, mainly for tests.
func NewMemoryStore() core.KeyValueStore {
	return &memoryStore{table: make(map[string]string)}
}

func (s *memoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.table[key]; ok {
		return val, nil
	}
	return "", core.ErrKeyNotFound
}

func (s *memoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table[key] = value
	return nil
}

func (s *memoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.table, key)
	return nil
}
