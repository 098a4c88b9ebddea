package state

import (
	"context"
	"sync"
)

// Store persists one GameState document per player.
// Load returns a fresh default state when the player has no document yet.
type Store interface {
	Load(ctx context.Context, playerID string) (*GameState, error)
	Save(ctx context.Context, playerID string, state *GameState) error
	Delete(ctx context.Context, playerID string) error
}

// MemoryStore keeps encoded documents in process memory.
// Documents go through Encode/Decode so it behaves like a real backend.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, playerID string) (*GameState, error) {
	m.mu.RLock()
	data, ok := m.docs[playerID]
	m.mu.RUnlock()

	if !ok {
		return New(), nil
	}
	return Decode(data)
}

func (m *MemoryStore) Save(ctx context.Context, playerID string, state *GameState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.docs[playerID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, playerID string) error {
	m.mu.Lock()
	delete(m.docs, playerID)
	m.mu.Unlock()
	return nil
}

// Raw returns the stored document bytes, mainly for tests.
func (m *MemoryStore) Raw(playerID string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[playerID]
	return data, ok
}

// Put stores raw bytes as a player's document, bypassing Encode.
func (m *MemoryStore) Put(playerID string, data []byte) {
	m.mu.Lock()
	m.docs[playerID] = data
	m.mu.Unlock()
}
