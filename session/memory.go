package session

import (
	"context"
	"sync"

	ai "github.com/brandkit/brandkit"
)

// Memory provides thread-safe in-memory session storage. It is the
// default backend when no Redis address is configured.
type Memory struct {
	mu        sync.RWMutex
	histories map[string][]ai.Message
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *Memory {
	return &Memory{
		histories: make(map[string][]ai.Message),
	}
}

// History returns a copy of the session's messages.
func (m *Memory) History(_ context.Context, id string) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.histories[id]
	result := make([]ai.Message, len(msgs))
	copy(result, msgs)
	return result, nil
}

// Append adds messages to the session's history.
func (m *Memory) Append(_ context.Context, id string, msgs ...ai.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histories[id] = append(m.histories[id], msgs...)
	return nil
}

// Reset removes the session's history.
func (m *Memory) Reset(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.histories, id)
	return nil
}

var _ Store = (*Memory)(nil)
