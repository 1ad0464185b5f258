package memory

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

// MemoryStore implements storage.KV in process memory
type MemoryStore struct {
	values   map[string][]byte
	mu       sync.RWMutex
	isActive bool
}

// NewMemoryStore creates a new instance of MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string][]byte),
		isActive: true,
	}
}

// Close deactivates the store; later calls fail with ErrStorageConnection
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isActive {
		return fmt.Errorf("store is already closed")
	}
	m.isActive = false
	return nil
}

// Get returns a copy of the value stored under key
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkActive(); err != nil {
		return nil, err
	}

	value, exists := m.values[key]
	if !exists {
		return nil, storage.ErrKeyNotFound
	}
	return bytes.Clone(value), nil
}

// Set stores a copy of value under key, replacing any previous value
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkActive(); err != nil {
		return err
	}

	m.values[key] = bytes.Clone(value)
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkActive(); err != nil {
		return err
	}

	delete(m.values, key)
	return nil
}

func (m *MemoryStore) checkActive() error {
	if !m.isActive {
		return storage.ErrStorageConnection
	}
	return nil
}
