package statuslog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"careteam/internal/directory"
)

type StatusLogStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *StatusLogStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestStatusLogStoreSuite(t *testing.T) {
	suite.Run(t, new(StatusLogStoreSuite))
}

func (s *StatusLogStoreSuite) entry(id, clientID string, prev, next directory.ClientStatus, at time.Time) Entry {
	return Entry{
		ID:             id,
		ClientID:       clientID,
		PreviousStatus: prev,
		NewStatus:      next,
		Reason:         "test",
		ChangedBy:      "coordinator-1",
		CreatedAt:      at,
	}
}

func (s *StatusLogStoreSuite) TestHistoryNewestFirst() {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-1", "client-1", "", directory.StatusHospital, base)))
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-2", "client-1", directory.StatusHospital, directory.StatusActive, base.Add(time.Hour))))
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-3", "client-1", directory.StatusActive, directory.StatusPaused, base.Add(2*time.Hour))))

	history, err := s.store.History(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal("log-3", history[0].ID)
	s.Equal("log-2", history[1].ID)
	s.Equal("log-1", history[2].ID)
}

func (s *StatusLogStoreSuite) TestHistoryBreaksTimestampTiesByInsertionOrder() {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-1", "client-1", "", directory.StatusHospital, at)))
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-2", "client-1", directory.StatusHospital, directory.StatusActive, at)))

	history, err := s.store.History(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal("log-2", history[0].ID)
	s.Equal("log-1", history[1].ID)
}

func (s *StatusLogStoreSuite) TestHistoryIsolatedPerClient() {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-1", "client-1", "", directory.StatusHospital, at)))
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-2", "client-2", "", directory.StatusPaused, at)))

	history, err := s.store.History(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal("log-1", history[0].ID)

	empty, err := s.store.History(s.ctx, "client-3")
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *StatusLogStoreSuite) TestHistoryReturnsCopy() {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Append(s.ctx, s.entry("log-1", "client-1", "", directory.StatusHospital, at)))

	history, err := s.store.History(s.ctx, "client-1")
	s.Require().NoError(err)
	history[0].ID = "mutated"

	again, err := s.store.History(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Equal("log-1", again[0].ID)
}
