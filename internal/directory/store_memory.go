package directory

import (
	"context"
	"sync"

	"careteam/pkg/platform/sentinel"
)

// InMemoryStore keeps clients and staff in maps. Used by unit tests and
// local runs without a database.
type InMemoryStore struct {
	mu      sync.RWMutex
	clients map[string]Client
	staff   map[string]Staff
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		clients: make(map[string]Client),
		staff:   make(map[string]Staff),
	}
}

func (s *InMemoryStore) GetClient(_ context.Context, clientID string) (Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.clients[clientID]
	if !ok {
		return Client{}, sentinel.ErrNotFound
	}
	return client, nil
}

func (s *InMemoryStore) GetStaff(_ context.Context, staffID string) (Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	staff, ok := s.staff[staffID]
	if !ok {
		return Staff{}, sentinel.ErrNotFound
	}
	return staff, nil
}

func (s *InMemoryStore) CreateClient(_ context.Context, client Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.clients[client.ID]; exists {
		return sentinel.ErrConflict
	}
	if client.Status == "" {
		client.Status = StatusActive
	}
	s.clients[client.ID] = client
	return nil
}

func (s *InMemoryStore) CreateStaff(_ context.Context, staff Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.staff[staff.ID]; exists {
		return sentinel.ErrConflict
	}
	s.staff[staff.ID] = staff
	return nil
}

func (s *InMemoryStore) ArchiveClient(_ context.Context, clientID string) error {
	return s.setArchived(clientID, true)
}

func (s *InMemoryStore) RestoreClient(_ context.Context, clientID string) error {
	return s.setArchived(clientID, false)
}

func (s *InMemoryStore) setArchived(clientID string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[clientID]
	if !ok {
		return sentinel.ErrNotFound
	}
	client.Archived = archived
	s.clients[clientID] = client
	return nil
}

func (s *InMemoryStore) UpdateClientStatus(_ context.Context, clientID string, status ClientStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	client, ok := s.clients[clientID]
	if !ok {
		return sentinel.ErrNotFound
	}
	client.Status = status
	s.clients[clientID] = client
	return nil
}
