package history

import (
	"context"
	"sort"
	"sync"
)

// Backend is the key-value capability the Store needs. Keys are bucket names
// (YYYY-MM-DD for well-formed buckets); values are serialized record arrays.
//
// Put replaces any existing value for key and returns where it was written.
// Get reports found=false, not an error, for a missing key.
// Keys may return names that are not valid dates; the Store filters them.
type Backend interface {
	Put(ctx context.Context, key string, value []byte) (location string, err error)
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Keys(ctx context.Context) ([]string, error)
}

// MemoryBackend keeps buckets in a map. It is safe for concurrent use.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return "memory://" + key, nil
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
