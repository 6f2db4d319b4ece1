package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStore 是进程内的页面缓存实现
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(item.expiresAt) {
		return Entry{}, false
	}
	return item.entry, true
}

func (s *MemoryStore) Set(_ context.Context, key string, entry Entry, ttl time.Duration) {
	s.mu.Lock()
	s.items[key] = memoryItem{
		entry:     entry,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
}

func (s *MemoryStore) Flush(_ context.Context) error {
	s.mu.Lock()
	s.items = make(map[string]memoryItem)
	s.mu.Unlock()
	return nil
}
