package restriction

import (
	"context"
	"sort"
	"sync"

	"careteam/pkg/platform/sentinel"
)

// InMemoryStore keeps restrictions in a map guarded by a RWMutex. It mirrors
// the partial unique index of the postgres schema: one active restriction
// per (client, staff) pair.
type InMemoryStore struct {
	mu           sync.RWMutex
	restrictions map[string]Restriction
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{restrictions: make(map[string]Restriction)}
}

func (s *InMemoryStore) Insert(_ context.Context, r Restriction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.IsActive {
		for _, existing := range s.restrictions {
			if existing.IsActive && existing.ClientID == r.ClientID && existing.StaffID == r.StaffID {
				return sentinel.ErrConflict
			}
		}
	}
	s.restrictions[r.ID] = r
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Restriction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restrictions[id]
	if !ok {
		return Restriction{}, sentinel.ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restrictions[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	r.IsActive = false
	s.restrictions[id] = r
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restrictions[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.restrictions, id)
	return nil
}

func (s *InMemoryStore) ListActive(_ context.Context, clientID string) ([]Restriction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []Restriction
	for _, r := range s.restrictions {
		if r.ClientID == clientID && r.IsActive {
			active = append(active, r)
		}
	}
	sortBySeverity(active)
	return active, nil
}

func (s *InMemoryStore) FindActivePair(_ context.Context, clientID, staffID string) ([]Restriction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []Restriction
	for _, r := range s.restrictions {
		if r.ClientID == clientID && r.StaffID == staffID && r.IsActive {
			active = append(active, r)
		}
	}
	sortBySeverity(active)
	return active, nil
}

func sortBySeverity(list []Restriction) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Severity.Rank() != list[j].Severity.Rank() {
			return list[i].Severity.Rank() < list[j].Severity.Rank()
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
