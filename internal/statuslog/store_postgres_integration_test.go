//go:build integration

package statuslog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"careteam/internal/directory"
	"careteam/internal/statuslog"
	"careteam/pkg/testutil/containers"
)

type StatusLogPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *statuslog.PostgresStore
}

func TestStatusLogPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StatusLogPostgresSuite))
}

func (s *StatusLogPostgresSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.postgres.ApplySchema(s.T())
	s.store = statuslog.NewPostgresStore(s.postgres.DB)
}

func (s *StatusLogPostgresSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "status_logs", "clients"))

	_, err := s.postgres.DB.ExecContext(ctx,
		`INSERT INTO clients (id, full_name) VALUES ('client-1', 'Avery Quinn')`)
	s.Require().NoError(err)
}

func (s *StatusLogPostgresSuite) entry(prev, next directory.ClientStatus, at time.Time) statuslog.Entry {
	return statuslog.Entry{
		ID:             uuid.NewString(),
		ClientID:       "client-1",
		PreviousStatus: prev,
		NewStatus:      next,
		Reason:         "test",
		ChangedBy:      "coordinator-1",
		CreatedAt:      at,
	}
}

func (s *StatusLogPostgresSuite) TestHistoryNewestFirst() {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first := s.entry("", directory.StatusHospital, base)
	second := s.entry(directory.StatusHospital, directory.StatusActive, base.Add(time.Hour))
	s.Require().NoError(s.store.Append(ctx, first))
	s.Require().NoError(s.store.Append(ctx, second))

	history, err := s.store.History(ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(second.ID, history[0].ID)
	s.Equal(first.ID, history[1].ID)
}

// TestTimestampTiesResolveByInsertionOrder exercises the seq tiebreaker:
// entries sharing a created_at still come back newest insertion first.
func (s *StatusLogPostgresSuite) TestTimestampTiesResolveByInsertionOrder() {
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first := s.entry("", directory.StatusHospital, at)
	second := s.entry(directory.StatusHospital, directory.StatusPaused, at)
	third := s.entry(directory.StatusPaused, directory.StatusActive, at)
	s.Require().NoError(s.store.Append(ctx, first))
	s.Require().NoError(s.store.Append(ctx, second))
	s.Require().NoError(s.store.Append(ctx, third))

	history, err := s.store.History(ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(third.ID, history[0].ID)
	s.Equal(second.ID, history[1].ID)
	s.Equal(first.ID, history[2].ID)
}

func (s *StatusLogPostgresSuite) TestEmptyPreviousStatusRoundTrips() {
	ctx := context.Background()
	e := s.entry("", directory.StatusHospital, time.Now().UTC())
	s.Require().NoError(s.store.Append(ctx, e))

	history, err := s.store.History(ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Empty(history[0].PreviousStatus)
	s.Equal(directory.StatusHospital, history[0].NewStatus)
}
