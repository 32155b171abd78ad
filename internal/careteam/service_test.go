package careteam

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"careteam/internal/assignment"
	"careteam/internal/directory"
	"careteam/internal/eligibility"
	"careteam/internal/events"
	"careteam/internal/preference"
	"careteam/internal/restriction"
	"careteam/internal/statuslog"
	dErrors "careteam/pkg/domain-errors"
	"careteam/pkg/requestcontext"
)

type CareTeamServiceSuite struct {
	suite.Suite
	ctx        context.Context
	now        time.Time
	dir        directory.Store
	statusLog  statuslog.Store
	sink       *events.MemorySink
	service    *Service
	cancelPubs context.CancelFunc
}

func (s *CareTeamServiceSuite) SetupTest() {
	s.now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), s.now)
	ctx = requestcontext.WithActorID(ctx, "coordinator-1")
	s.ctx = ctx

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.dir = directory.NewInMemoryStore()
	s.statusLog = statuslog.NewInMemoryStore()
	s.sink = events.NewMemorySink()

	publisher := events.NewPublisher(s.sink, nil, logger)
	pubCtx, cancel := context.WithCancel(context.Background())
	s.cancelPubs = cancel
	go func() { _ = publisher.Run(pubCtx) }()

	preferences := preference.NewRegistry(preference.NewInMemoryStore())
	restrictions := restriction.NewRegistry(restriction.NewInMemoryStore())
	assignments := assignment.NewRegistry(assignment.NewInMemoryStore())
	evaluator := eligibility.NewService(preferences, restrictions, nil, nil, logger)

	s.service = NewService(
		s.dir,
		assignments,
		preferences,
		restrictions,
		s.statusLog,
		evaluator,
		NewShardedTx(),
		publisher,
		nil,
		logger,
	)

	s.Require().NoError(s.dir.CreateClient(s.ctx, directory.Client{
		ID: "client-1", FullName: "Avery Quinn", Status: directory.StatusActive, CreatedAt: s.now,
	}))
	s.Require().NoError(s.dir.CreateClient(s.ctx, directory.Client{
		ID: "client-archived", FullName: "Rowan Tate", Status: directory.StatusActive, Archived: true, CreatedAt: s.now,
	}))
	s.Require().NoError(s.dir.CreateStaff(s.ctx, directory.Staff{
		ID: "staff-1", FullName: "Jordan Lee", Active: true, CreatedAt: s.now,
	}))
	s.Require().NoError(s.dir.CreateStaff(s.ctx, directory.Staff{
		ID: "staff-2", FullName: "Sam Okafor", Active: true, CreatedAt: s.now,
	}))
}

func (s *CareTeamServiceSuite) TearDownTest() {
	s.cancelPubs()
}

func TestCareTeamServiceSuite(t *testing.T) {
	suite.Run(t, new(CareTeamServiceSuite))
}

func (s *CareTeamServiceSuite) TestMutualExclusion() {
	s.Run("restriction blocks preference for same pair", func() {
		_, err := s.service.SetRestriction(s.ctx, "client-1", "staff-1", "history of conflict", restriction.SeverityHardBlock)
		s.Require().NoError(err)

		_, err = s.service.SetPreference(s.ctx, "client-1", "staff-1", preference.LevelPrimary, "")
		s.Require().Error(err)
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	s.Run("other staff unaffected", func() {
		_, err := s.service.SetPreference(s.ctx, "client-1", "staff-2", preference.LevelPrimary, "")
		s.Require().NoError(err)
	})

	s.Run("preference blocks restriction for same pair", func() {
		_, err := s.service.SetRestriction(s.ctx, "client-1", "staff-2", "late notice", restriction.SeverityWarning)
		s.Require().Error(err)
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})
}

// TestRestrictThenPreferScenario walks the documented flow: restrict, verify
// blocked, fail to prefer, lift the restriction, prefer, verify preferred.
func (s *CareTeamServiceSuite) TestRestrictThenPreferScenario() {
	created, err := s.service.SetRestriction(s.ctx, "client-1", "staff-1", "history of conflict", restriction.SeverityHardBlock)
	s.Require().NoError(err)

	verdict, err := s.service.Evaluate(s.ctx, "client-1", "staff-1")
	s.Require().NoError(err)
	s.Equal(eligibility.OutcomeBlocked, verdict.Outcome)
	s.Equal(restriction.SeverityHardBlock, verdict.Severity)
	s.Equal("history of conflict", verdict.Reason)

	_, err = s.service.SetPreference(s.ctx, "client-1", "staff-1", preference.LevelPrimary, "")
	s.Require().Error(err)
	s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))

	s.Require().NoError(s.service.RemoveRestriction(s.ctx, created.ID))

	_, err = s.service.SetPreference(s.ctx, "client-1", "staff-1", preference.LevelPrimary, "")
	s.Require().NoError(err)

	verdict, err = s.service.Evaluate(s.ctx, "client-1", "staff-1")
	s.Require().NoError(err)
	s.Equal(eligibility.OutcomePreferred, verdict.Outcome)
	s.Equal(preference.LevelPrimary, verdict.Level)
}

func (s *CareTeamServiceSuite) TestEvaluateNeutralWithoutSignals() {
	verdict, err := s.service.Evaluate(s.ctx, "client-1", "staff-1")
	s.Require().NoError(err)
	s.Equal(eligibility.OutcomeNeutral, verdict.Outcome)
	s.Empty(verdict.Severity)
	s.Empty(verdict.Level)
}

func (s *CareTeamServiceSuite) TestArchivedClientFrozen() {
	_, err := s.service.SetPreference(s.ctx, "client-archived", "staff-1", preference.LevelPrimary, "")
	s.Equal(dErrors.CodeArchived, dErrors.CodeOf(err))

	_, err = s.service.SetRestriction(s.ctx, "client-archived", "staff-1", "reason", restriction.SeverityWarning)
	s.Equal(dErrors.CodeArchived, dErrors.CodeOf(err))

	_, err = s.service.AddAssignment(s.ctx, "client-archived", "staff-1", assignment.TypePrimarySupport, time.Time{})
	s.Equal(dErrors.CodeArchived, dErrors.CodeOf(err))

	_, err = s.service.ChangeStatus(s.ctx, "client-archived", directory.StatusPaused, "attempt")
	s.Equal(dErrors.CodeArchived, dErrors.CodeOf(err))

	s.Run("reads still work", func() {
		_, err := s.service.Evaluate(s.ctx, "client-archived", "staff-1")
		s.Require().NoError(err)
		_, err = s.service.History(s.ctx, "client-archived")
		s.Require().NoError(err)
	})
}

func (s *CareTeamServiceSuite) TestUnknownParticipants() {
	_, err := s.service.SetPreference(s.ctx, "ghost", "staff-1", preference.LevelPrimary, "")
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))

	_, err = s.service.SetPreference(s.ctx, "client-1", "ghost", preference.LevelPrimary, "")
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))

	_, err = s.service.Evaluate(s.ctx, "client-1", "ghost")
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))

	err = s.service.RemovePreference(s.ctx, "missing")
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *CareTeamServiceSuite) TestChangeStatusWritesLog() {
	change, err := s.service.ChangeStatus(s.ctx, "client-1", directory.StatusHospital, "admitted overnight")
	s.Require().NoError(err)
	s.Equal(directory.StatusActive, change.Previous)
	s.Equal(directory.StatusHospital, change.New)

	client, err := s.dir.GetClient(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Equal(directory.StatusHospital, client.Status)

	history, err := s.service.History(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(directory.StatusActive, history[0].PreviousStatus)
	s.Equal(directory.StatusHospital, history[0].NewStatus)
	s.Equal("admitted overnight", history[0].Reason)
	s.Equal("coordinator-1", history[0].ChangedBy)
	s.Equal(s.now, history[0].CreatedAt)
}

func (s *CareTeamServiceSuite) TestChangeStatusRejectsInvalidValue() {
	_, err := s.service.ChangeStatus(s.ctx, "client-1", directory.ClientStatus("OnHoliday"), "nope")
	s.Require().Error(err)
	s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))

	history, err := s.service.History(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *CareTeamServiceSuite) TestHistoryNewestFirst() {
	_, err := s.service.ChangeStatus(s.ctx, "client-1", directory.StatusHospital, "admitted")
	s.Require().NoError(err)
	_, err = s.service.ChangeStatus(s.ctx, "client-1", directory.StatusActive, "discharged home")
	s.Require().NoError(err)

	history, err := s.service.History(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(directory.StatusActive, history[0].NewStatus)
	s.Equal(directory.StatusHospital, history[1].NewStatus)
}

type failingAppendStore struct {
	inner statuslog.Store
}

func (f *failingAppendStore) Append(context.Context, statuslog.Entry) error {
	return errors.New("append refused")
}

func (f *failingAppendStore) History(ctx context.Context, clientID string) ([]statuslog.Entry, error) {
	return f.inner.History(ctx, clientID)
}

// TestChangeStatusAtomicity forces the log append to fail and verifies the
// client's status did not move without its log entry.
func (s *CareTeamServiceSuite) TestChangeStatusAtomicity() {
	s.service.statusLog = &failingAppendStore{inner: s.statusLog}

	_, err := s.service.ChangeStatus(s.ctx, "client-1", directory.StatusDischarged, "closing")
	s.Require().Error(err)
	s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))

	client, err := s.dir.GetClient(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Equal(directory.StatusActive, client.Status)
}

func (s *CareTeamServiceSuite) TestRemovePreferenceDeactivates() {
	created, err := s.service.SetPreference(s.ctx, "client-1", "staff-1", preference.LevelSecondary, "")
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemovePreference(s.ctx, created.ID))

	active, err := s.service.ListActivePreferences(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Empty(active)

	// The pair is free again for a restriction.
	_, err = s.service.SetRestriction(s.ctx, "client-1", "staff-1", "fresh concern", restriction.SeveritySoftBlock)
	s.Require().NoError(err)
}

func (s *CareTeamServiceSuite) TestAssignmentLifecycle() {
	created, err := s.service.AddAssignment(s.ctx, "client-1", "staff-1", assignment.TypePrimarySupport, time.Time{})
	s.Require().NoError(err)
	s.Equal(s.now, created.StartDate)

	list, err := s.service.ListActiveAssignments(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(list, 1)

	_, err = s.service.EndAssignment(s.ctx, created.ID, s.now.Add(-time.Hour))
	s.Require().Error(err)
	s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))

	_, err = s.service.EndAssignment(s.ctx, created.ID, s.now.Add(time.Hour))
	s.Require().NoError(err)

	second, err := s.service.AddAssignment(s.ctx, "client-1", "staff-2", assignment.TypeCareManager, time.Time{})
	s.Require().NoError(err)
	s.Require().NoError(s.service.RemoveAssignment(s.ctx, second.ID))

	_, err = s.service.EndAssignment(s.ctx, second.ID, s.now.Add(time.Hour))
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *CareTeamServiceSuite) TestEventsEmitted() {
	_, err := s.service.SetRestriction(s.ctx, "client-1", "staff-1", "history of conflict", restriction.SeverityHardBlock)
	s.Require().NoError(err)

	_, err = s.service.ChangeStatus(s.ctx, "client-1", directory.StatusHospital, "admitted")
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		return len(s.sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	emitted := s.sink.Events()
	s.Equal(events.TypeRestrictionSet, emitted[0].Type)
	s.Equal("client-1", emitted[0].ClientID)
	s.Equal("coordinator-1", emitted[0].ActorID)
	s.Equal(events.TypeStatusChanged, emitted[1].Type)
}

func (s *CareTeamServiceSuite) TestConcurrentPairMutationsKeepExclusion() {
	const attempts = 20
	var wg sync.WaitGroup
	wg.Add(2 * attempts)

	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, _ = s.service.SetPreference(s.ctx, "client-1", "staff-1", preference.LevelPrimary, "")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.service.SetRestriction(s.ctx, "client-1", "staff-1", "race", restriction.SeverityHardBlock)
		}()
	}
	wg.Wait()

	prefs, err := s.service.ListActivePreferences(s.ctx, "client-1")
	s.Require().NoError(err)
	restrs, err := s.service.ListActiveRestrictions(s.ctx, "client-1")
	s.Require().NoError(err)

	// At most one of the two kinds may hold an active entry for the pair.
	s.False(len(prefs) > 0 && len(restrs) > 0, "both an active preference and an active restriction exist for the pair")
	s.LessOrEqual(len(prefs), 1)
	s.LessOrEqual(len(restrs), 1)
}
