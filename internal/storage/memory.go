package storage

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV backend. It backs the "memory" storage
// option and the test suites; nothing survives a restart.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) SetMulti(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range entries {
		m.data[key] = value
	}
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}
