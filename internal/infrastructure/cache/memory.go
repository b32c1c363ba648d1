package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-memory Store. It is suitable for tests and
// single-instance deployments without Redis; state is not shared
// across processes.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	indexes    map[string]map[string]struct{}
	defaultTTL time.Duration
	now        func() time.Time
}

// NewMemoryStore creates an in-memory store with the given default TTL.
func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &MemoryStore{
		entries:    make(map[string]memoryEntry),
		indexes:    make(map[string]map[string]struct{}),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.mu.Lock()
	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) AddToIndex(ctx context.Context, indexKey, key string) error {
	s.mu.Lock()
	index, ok := s.indexes[indexKey]
	if !ok {
		index = make(map[string]struct{})
		s.indexes[indexKey] = index
	}
	index[key] = struct{}{}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) InvalidateIndex(ctx context.Context, indexKey string) error {
	s.mu.Lock()
	for key := range s.indexes[indexKey] {
		delete(s.entries, key)
	}
	delete(s.indexes, indexKey)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
