package repository

import (
	"context"
	"sync"
)

// MemoryStore keeps collections in a plain map. Used by tests and the
// "memory" store driver; contents die with the process.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]byte),
	}
}

func (ms *MemoryStore) GetCollection(ctx context.Context, name string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	data, exists := ms.collections[name]
	if !exists {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (ms *MemoryStore) SaveCollection(ctx context.Context, name string, data []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	ms.collections[name] = stored
	return nil
}
