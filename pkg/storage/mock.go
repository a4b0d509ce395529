package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// MockStorage is an in-memory implementation of Storage for testing.
// World documents are stored as raw bytes and re-parsed on every
// GetWorld, matching the fresh-instance contract of the real store.
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*game.State
	worlds    map[string][]byte // filename → document
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[uuid.UUID]*game.State),
		worlds:   make(map[string][]byte),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddWorld registers a raw world document under a filename.
func (m *MockStorage) AddWorld(filename string, doc []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worlds[filename] = append([]byte(nil), doc...)
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveGameState mocks saving a session
func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, st *game.State) error {
	if st == nil {
		return errors.New("gamestate cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = st
	return nil
}

// LoadGameState mocks loading a session
func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return st, nil
}

// DeleteGameState mocks deleting a session
func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// ListWorlds maps titles of registered documents to their filenames.
func (m *MockStorage) ListWorlds(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	worlds := make(map[string]string, len(m.worlds))
	for filename, doc := range m.worlds {
		w, err := world.Parse(doc)
		if err != nil {
			continue
		}
		title := w.Meta.Title
		if title == "" {
			title = filename
		}
		worlds[title] = filename
	}
	return worlds, nil
}

// GetWorld re-parses the registered document into a fresh World.
func (m *MockStorage) GetWorld(ctx context.Context, filename string) (*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.worlds[filename]
	if !ok {
		return nil, fmt.Errorf("world not found: %s", filename)
	}
	return world.Parse(doc)
}
