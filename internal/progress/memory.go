package progress

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps values in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, learnerID, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[learnerID][key]
	return slices.Clone(v), ok, nil
}

func (m *MemoryBackend) Put(_ context.Context, learnerID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[learnerID] == nil {
		m.data[learnerID] = make(map[string][]byte)
	}
	m.data[learnerID][key] = slices.Clone(value)
	return nil
}
