package repo

import (
	"context"
	"sync"

	"shorturl.local/internal/app/shortlink"
)

// MemoryStore 进程内实现，用于测试和本地开发；不能跨实例共享。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]shortlink.Mapping
}

var _ shortlink.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]shortlink.Mapping)}
}

func (s *MemoryStore) PutIfAbsent(ctx context.Context, m shortlink.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[m.ID]; ok {
		return shortlink.ErrAlreadyExists
	}
	s.data[m.ID] = m
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (shortlink.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.data[id]
	if !ok {
		return shortlink.Mapping{}, shortlink.ErrNotFound
	}
	return m, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
