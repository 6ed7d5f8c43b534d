package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory. Used for local development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string]map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[sessionID][key]
	return value, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.slots[sessionID]
	if !ok {
		session = map[string]string{}
		m.slots[sessionID] = session
	}
	session[key] = value
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots[sessionID], key)
	if len(m.slots[sessionID]) == 0 {
		delete(m.slots, sessionID)
	}
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
