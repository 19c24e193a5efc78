// Package memory keeps quiz data in process memory. Nothing survives a
// restart; it backs STORAGE_TYPE=memory and tests.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/vytor/quizzical/internal/repository"
)

type KVStore struct {
	data map[string][]byte
	mu   sync.RWMutex
}

func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

var _ repository.KVStore = (*KVStore)(nil)

func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = bytes.Clone(value)
	return nil
}

func (s *KVStore) Append(_ context.Context, key string, item []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated, err := repository.AppendJSON(s.data[key], item)
	if err != nil {
		return err
	}
	s.data[key] = updated
	return nil
}

func (s *KVStore) Ping(context.Context) error { return nil }
