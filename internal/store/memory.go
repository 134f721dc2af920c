package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV used by tests and development setups
// without a database.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the payload under key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[key]
	return payload, ok, nil
}

// Set stores the payload under key.
func (m *MemoryKV) Set(_ context.Context, key, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	return nil
}
