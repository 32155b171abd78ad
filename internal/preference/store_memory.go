package preference

import (
	"context"
	"sort"
	"sync"

	"careteam/pkg/platform/sentinel"
)

// InMemoryStore keeps preferences in a map guarded by a RWMutex. It mirrors
// the partial unique index of the postgres schema: one active preference per
// (client, staff) pair.
type InMemoryStore struct {
	mu          sync.RWMutex
	preferences map[string]Preference
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{preferences: make(map[string]Preference)}
}

func (s *InMemoryStore) Insert(_ context.Context, p Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.IsActive {
		for _, existing := range s.preferences {
			if existing.IsActive && existing.ClientID == p.ClientID && existing.StaffID == p.StaffID {
				return sentinel.ErrConflict
			}
		}
	}
	s.preferences[p.ID] = p
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.preferences[id]
	if !ok {
		return Preference{}, sentinel.ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.preferences[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.IsActive = false
	s.preferences[id] = p
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.preferences[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.preferences, id)
	return nil
}

func (s *InMemoryStore) ListActive(_ context.Context, clientID string) ([]Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []Preference
	for _, p := range s.preferences {
		if p.ClientID == clientID && p.IsActive {
			active = append(active, p)
		}
	}
	sortByRank(active)
	return active, nil
}

func (s *InMemoryStore) FindActivePair(_ context.Context, clientID, staffID string) ([]Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []Preference
	for _, p := range s.preferences {
		if p.ClientID == clientID && p.StaffID == staffID && p.IsActive {
			active = append(active, p)
		}
	}
	sortByRank(active)
	return active, nil
}

func sortByRank(list []Preference) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Level.Rank() != list[j].Level.Rank() {
			return list[i].Level.Rank() < list[j].Level.Rank()
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
