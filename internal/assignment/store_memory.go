package assignment

import (
	"context"
	"sort"
	"sync"
	"time"

	"careteam/pkg/platform/sentinel"
)

// InMemoryStore keeps assignments in a map guarded by a RWMutex.
type InMemoryStore struct {
	mu          sync.RWMutex
	assignments map[string]Assignment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{assignments: make(map[string]Assignment)}
}

func (s *InMemoryStore) Insert(_ context.Context, a Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.ID] = a
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[id]
	if !ok {
		return Assignment{}, sentinel.ErrNotFound
	}
	return a, nil
}

func (s *InMemoryStore) SetEndDate(_ context.Context, id string, endDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.EndDate = &endDate
	s.assignments[id] = a
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.assignments, id)
	return nil
}

func (s *InMemoryStore) ListActive(_ context.Context, clientID string, now time.Time) ([]Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []Assignment
	for _, a := range s.assignments {
		if a.ClientID == clientID && a.IsActive(now) {
			active = append(active, a)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].StartDate.Equal(active[j].StartDate) {
			return active[i].CreatedAt.Before(active[j].CreatedAt)
		}
		return active[i].StartDate.Before(active[j].StartDate)
	})
	return active, nil
}
