package kvstore

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	codec *Codec
}

// NewMemoryStore returns a process-local store, used by tests and the memory driver
func NewMemoryStore(codec *Codec) Store {
	if codec == nil {
		codec = NewCodec(DefaultMigrations...)
	}
	return &memoryStore{data: make(map[string][]byte), codec: codec}
}

func (s *memoryStore) Load(_ context.Context, key string, dst interface{}) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, s.codec.Decode(key, raw, dst)
}

func (s *memoryStore) Save(_ context.Context, key string, v interface{}) error {
	raw, err := s.codec.Encode(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Close() error { return nil }

// PutRaw stores raw bytes without an envelope; tests use it to seed legacy blobs.
func PutRaw(s Store, key string, raw []byte) bool {
	m, ok := s.(*memoryStore)
	if !ok {
		return false
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return true
}
