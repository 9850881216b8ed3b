package store

import (
	"context"
	"sync"
)

// MemorySlot est l'implémentation en mémoire de Slot, utilisée par les tests.
type MemorySlot struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{slots: make(map[string]string)}
}

func (m *MemorySlot) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	if !ok {
		return "", ErrNoSlot
	}
	return value, nil
}

func (m *MemorySlot) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

func (m *MemorySlot) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
