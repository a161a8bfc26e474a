package store

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps snapshots in a map. Used by tests and ephemeral runs.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements Backend.
func (m *Memory) Get(_ context.Context, namespace string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[namespace]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(b), nil
}

// Put implements Backend.
func (m *Memory) Put(_ context.Context, namespace string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[namespace] = slices.Clone(data)
	return nil
}

// Delete implements Backend.
func (m *Memory) Delete(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error { return nil }
