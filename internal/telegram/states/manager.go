package states

import (
	"context"
	"sync"
)

// Manager keeps conversations in process memory.
type Manager struct {
	mu            sync.RWMutex
	conversations map[int64]Conversation
}

func NewManager() *Manager {
	return &Manager{
		conversations: make(map[int64]Conversation),
	}
}

// Get returns an idle conversation for unknown users.
func (m *Manager) Get(_ context.Context, userID int64) (Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, ok := m.conversations[userID]
	if !ok {
		return Conversation{}, nil
	}
	return conv.With(conv.Step, "", ""), nil
}

// Set stores conv. Setting an idle conversation clears the user.
func (m *Manager) Set(_ context.Context, userID int64, conv Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conv.Step == StepNone {
		delete(m.conversations, userID)
		return nil
	}
	m.conversations[userID] = conv.With(conv.Step, "", "")
	return nil
}

func (m *Manager) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.conversations, userID)
	return nil
}

func (m *Manager) Exists(_ context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.conversations[userID]
	return ok, nil
}
