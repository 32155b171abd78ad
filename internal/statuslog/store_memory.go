package statuslog

import (
	"context"
	"sync"
)

// InMemoryStore keeps entries per client in append order. History reverses,
// so the newest entry comes first even when timestamps collide.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string][]Entry)}
}

func (s *InMemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ClientID] = append(s.entries[entry.ClientID], entry)
	return nil
}

func (s *InMemoryStore) History(_ context.Context, clientID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.entries[clientID]
	history := make([]Entry, len(stored))
	for i, entry := range stored {
		history[len(stored)-1-i] = entry
	}
	return history, nil
}
