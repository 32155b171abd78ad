// Package careteam is the orchestrator over the registries. All cross-record
// workflows live here: archived-client gating, the preferred/restricted
// mutual-exclusion check, and the status-change-plus-log write. Registries
// never call each other; this package owns every sequence that spans more
// than one of them.
package careteam

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"careteam/internal/assignment"
	"careteam/internal/directory"
	"careteam/internal/eligibility"
	"careteam/internal/events"
	"careteam/internal/platform/metrics"
	"careteam/internal/preference"
	"careteam/internal/restriction"
	"careteam/internal/statuslog"
	dErrors "careteam/pkg/domain-errors"
	"careteam/pkg/platform/sentinel"
	"careteam/pkg/requestcontext"
)

var tracer = otel.Tracer("careteam")

// StatusChange is the outcome of a status transition.
type StatusChange struct {
	ClientID string                 `json:"client_id"`
	Previous directory.ClientStatus `json:"previous_status"`
	New      directory.ClientStatus `json:"new_status"`
}

// Service orchestrates the care-team registries.
type Service struct {
	directory    directory.Store
	assignments  *assignment.Registry
	preferences  *preference.Registry
	restrictions *restriction.Registry
	statusLog    statuslog.Store
	evaluator    *eligibility.Service
	txRunner     TxRunner
	publisher    *events.Publisher
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func NewService(
	dir directory.Store,
	assignments *assignment.Registry,
	preferences *preference.Registry,
	restrictions *restriction.Registry,
	statusLog statuslog.Store,
	evaluator *eligibility.Service,
	txRunner TxRunner,
	publisher *events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		directory:    dir,
		assignments:  assignments,
		preferences:  preferences,
		restrictions: restrictions,
		statusLog:    statusLog,
		evaluator:    evaluator,
		txRunner:     txRunner,
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
	}
}

// pairScope keys transaction serialization for pair mutations. Both the
// preference and restriction paths for the same pair must collide here or
// the mutual-exclusion check loses its race protection.
func pairScope(clientID, staffID string) string {
	return clientID + "/" + staffID
}

// SetPreference creates an active preference for the pair. The pair must
// have no active restriction.
func (s *Service) SetPreference(ctx context.Context, clientID, staffID string, level preference.Level, notes string) (preference.Preference, error) {
	ctx, span := tracer.Start(ctx, "careteam.SetPreference", trace.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("staff_id", staffID),
	))
	defer span.End()

	var created preference.Preference
	err := s.txRunner.RunInTx(ctx, pairScope(clientID, staffID), func(ctx context.Context) error {
		if err := s.requireMutableClient(ctx, clientID); err != nil {
			return err
		}
		if err := s.requireStaff(ctx, staffID); err != nil {
			return err
		}

		active, err := s.restrictions.FindActivePair(ctx, clientID, staffID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return dErrors.New(dErrors.CodeConflict, "staff member has an active restriction for this client: choose one of preferred or restricted")
		}

		created, err = s.preferences.Add(ctx, clientID, staffID, level, notes)
		return err
	})
	s.recordMutation("set_preference", err)
	if err != nil {
		return preference.Preference{}, err
	}

	s.evaluator.InvalidatePair(ctx, clientID, staffID)
	s.emit(ctx, events.Event{
		Type:     events.TypePreferenceSet,
		ClientID: clientID,
		StaffID:  staffID,
		EntityID: created.ID,
		Detail:   string(created.Level),
	})
	return created, nil
}

// RemovePreference deactivates the preference. The row survives for history.
func (s *Service) RemovePreference(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "careteam.RemovePreference", trace.WithAttributes(
		attribute.String("preference_id", id),
	))
	defer span.End()

	pref, err := s.preferences.Get(ctx, id)
	if err != nil {
		s.recordMutation("remove_preference", err)
		return err
	}

	err = s.txRunner.RunInTx(ctx, pairScope(pref.ClientID, pref.StaffID), func(ctx context.Context) error {
		if err := s.requireMutableClient(ctx, pref.ClientID); err != nil {
			return err
		}
		return s.preferences.Deactivate(ctx, id)
	})
	s.recordMutation("remove_preference", err)
	if err != nil {
		return err
	}

	s.evaluator.InvalidatePair(ctx, pref.ClientID, pref.StaffID)
	s.emit(ctx, events.Event{
		Type:     events.TypePreferenceRemoved,
		ClientID: pref.ClientID,
		StaffID:  pref.StaffID,
		EntityID: pref.ID,
	})
	return nil
}

// SetRestriction creates an active restriction for the pair. The pair must
// have no active preference.
func (s *Service) SetRestriction(ctx context.Context, clientID, staffID, reason string, severity restriction.Severity) (restriction.Restriction, error) {
	ctx, span := tracer.Start(ctx, "careteam.SetRestriction", trace.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("staff_id", staffID),
	))
	defer span.End()

	var created restriction.Restriction
	err := s.txRunner.RunInTx(ctx, pairScope(clientID, staffID), func(ctx context.Context) error {
		if err := s.requireMutableClient(ctx, clientID); err != nil {
			return err
		}
		if err := s.requireStaff(ctx, staffID); err != nil {
			return err
		}

		active, err := s.preferences.FindActivePair(ctx, clientID, staffID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return dErrors.New(dErrors.CodeConflict, "staff member has an active preference for this client: choose one of preferred or restricted")
		}

		created, err = s.restrictions.Add(ctx, clientID, staffID, reason, severity)
		return err
	})
	s.recordMutation("set_restriction", err)
	if err != nil {
		return restriction.Restriction{}, err
	}

	s.evaluator.InvalidatePair(ctx, clientID, staffID)
	s.emit(ctx, events.Event{
		Type:     events.TypeRestrictionSet,
		ClientID: clientID,
		StaffID:  staffID,
		EntityID: created.ID,
		Reason:   created.Reason,
		Detail:   string(created.Severity),
	})
	return created, nil
}

// RemoveRestriction deactivates the restriction. The row survives for history.
func (s *Service) RemoveRestriction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "careteam.RemoveRestriction", trace.WithAttributes(
		attribute.String("restriction_id", id),
	))
	defer span.End()

	restr, err := s.restrictions.Get(ctx, id)
	if err != nil {
		s.recordMutation("remove_restriction", err)
		return err
	}

	err = s.txRunner.RunInTx(ctx, pairScope(restr.ClientID, restr.StaffID), func(ctx context.Context) error {
		if err := s.requireMutableClient(ctx, restr.ClientID); err != nil {
			return err
		}
		return s.restrictions.Deactivate(ctx, id)
	})
	s.recordMutation("remove_restriction", err)
	if err != nil {
		return err
	}

	s.evaluator.InvalidatePair(ctx, restr.ClientID, restr.StaffID)
	s.emit(ctx, events.Event{
		Type:     events.TypeRestrictionRemoved,
		ClientID: restr.ClientID,
		StaffID:  restr.StaffID,
		EntityID: restr.ID,
	})
	return nil
}

// AddAssignment creates an assignment. Assignments carry no eligibility
// semantics of their own, so no exclusion check applies; only the directory
// gates hold.
func (s *Service) AddAssignment(ctx context.Context, clientID, staffID string, assignmentType assignment.Type, startDate time.Time) (assignment.Assignment, error) {
	ctx, span := tracer.Start(ctx, "careteam.AddAssignment", trace.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("staff_id", staffID),
	))
	defer span.End()

	var created assignment.Assignment
	err := s.txRunner.RunInTx(ctx, pairScope(clientID, staffID), func(ctx context.Context) error {
		if err := s.requireMutableClient(ctx, clientID); err != nil {
			return err
		}
		if err := s.requireStaff(ctx, staffID); err != nil {
			return err
		}
		var err error
		created, err = s.assignments.Add(ctx, clientID, staffID, assignmentType, startDate)
		return err
	})
	s.recordMutation("add_assignment", err)
	if err != nil {
		return assignment.Assignment{}, err
	}

	s.emit(ctx, events.Event{
		Type:     events.TypeAssignmentCreated,
		ClientID: clientID,
		StaffID:  staffID,
		EntityID: created.ID,
		Detail:   string(created.Type),
	})
	return created, nil
}

// EndAssignment sets the assignment's end date.
func (s *Service) EndAssignment(ctx context.Context, id string, endDate time.Time) (assignment.Assignment, error) {
	ctx, span := tracer.Start(ctx, "careteam.EndAssignment", trace.WithAttributes(
		attribute.String("assignment_id", id),
	))
	defer span.End()

	current, err := s.assignments.Get(ctx, id)
	if err != nil {
		s.recordMutation("end_assignment", err)
		return assignment.Assignment{}, err
	}

	var ended assignment.Assignment
	err = s.txRunner.RunInTx(ctx, pairScope(current.ClientID, current.StaffID), func(ctx context.Context) error {
		if err := s.requireMutableClient(ctx, current.ClientID); err != nil {
			return err
		}
		var err error
		ended, err = s.assignments.End(ctx, id, endDate)
		return err
	})
	s.recordMutation("end_assignment", err)
	if err != nil {
		return assignment.Assignment{}, err
	}

	s.emit(ctx, events.Event{
		Type:     events.TypeAssignmentEnded,
		ClientID: ended.ClientID,
		StaffID:  ended.StaffID,
		EntityID: ended.ID,
	})
	return ended, nil
}

// RemoveAssignment hard-deletes the assignment. Used for entries created in
// error; an assignment that genuinely ended should be ended, not removed.
func (s *Service) RemoveAssignment(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "careteam.RemoveAssignment", trace.WithAttributes(
		attribute.String("assignment_id", id),
	))
	defer span.End()

	current, err := s.assignments.Get(ctx, id)
	if err != nil {
		s.recordMutation("remove_assignment", err)
		return err
	}

	err = s.txRunner.RunInTx(ctx, pairScope(current.ClientID, current.StaffID), func(ctx context.Context) error {
		if err := s.requireMutableClient(ctx, current.ClientID); err != nil {
			return err
		}
		return s.assignments.Remove(ctx, id)
	})
	s.recordMutation("remove_assignment", err)
	if err != nil {
		return err
	}

	s.emit(ctx, events.Event{
		Type:     events.TypeAssignmentRemoved,
		ClientID: current.ClientID,
		StaffID:  current.StaffID,
		EntityID: current.ID,
	})
	return nil
}

// ChangeStatus transitions the client's status and appends the log entry in
// the same transaction. Either both writes land or neither does.
func (s *Service) ChangeStatus(ctx context.Context, clientID string, newStatus directory.ClientStatus, reason string) (StatusChange, error) {
	ctx, span := tracer.Start(ctx, "careteam.ChangeStatus", trace.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("new_status", string(newStatus)),
	))
	defer span.End()

	if _, err := directory.ParseClientStatus(string(newStatus)); err != nil {
		s.recordMutation("change_status", err)
		return StatusChange{}, err
	}

	var change StatusChange
	err := s.txRunner.RunInTx(ctx, clientID, func(ctx context.Context) error {
		client, err := s.getClient(ctx, clientID)
		if err != nil {
			return err
		}
		if client.Archived {
			return dErrors.New(dErrors.CodeArchived, "client is archived")
		}

		change = StatusChange{ClientID: clientID, Previous: client.Status, New: newStatus}

		// Log first, status second. The enclosing transaction makes the
		// pair atomic in the database backend either way; this order keeps
		// the in-memory backend from changing the status when the append
		// fails.
		entry := statuslog.Entry{
			ID:             uuid.NewString(),
			ClientID:       clientID,
			PreviousStatus: client.Status,
			NewStatus:      newStatus,
			Reason:         reason,
			ChangedBy:      requestcontext.ActorID(ctx),
			CreatedAt:      requestcontext.Now(ctx),
		}
		if err := s.statusLog.Append(ctx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "append status log")
		}
		if err := s.directory.UpdateClientStatus(ctx, clientID, newStatus); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update client status")
		}
		return nil
	})
	s.recordMutation("change_status", err)
	if err != nil {
		return StatusChange{}, err
	}

	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(newStatus)).Inc()
	}
	s.emit(ctx, events.Event{
		Type:     events.TypeStatusChanged,
		ClientID: clientID,
		Reason:   reason,
		Detail:   string(change.Previous) + ">" + string(change.New),
	})
	return change, nil
}

// History returns the client's status transitions newest-first.
func (s *Service) History(ctx context.Context, clientID string) ([]statuslog.Entry, error) {
	ctx, span := tracer.Start(ctx, "careteam.History", trace.WithAttributes(
		attribute.String("client_id", clientID),
	))
	defer span.End()

	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	entries, err := s.statusLog.History(ctx, clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "read status history")
	}
	return entries, nil
}

// Evaluate returns the eligibility verdict for a candidate pair. Archived
// clients still evaluate; the freeze applies to writes only.
func (s *Service) Evaluate(ctx context.Context, clientID, staffID string) (eligibility.Verdict, error) {
	ctx, span := tracer.Start(ctx, "careteam.Evaluate", trace.WithAttributes(
		attribute.String("client_id", clientID),
		attribute.String("staff_id", staffID),
	))
	defer span.End()

	if _, err := s.getClient(ctx, clientID); err != nil {
		return eligibility.Verdict{}, err
	}
	if err := s.requireStaff(ctx, staffID); err != nil {
		return eligibility.Verdict{}, err
	}
	return s.evaluator.Evaluate(ctx, clientID, staffID)
}

// ListActiveAssignments returns the client's active assignments ordered by
// start date.
func (s *Service) ListActiveAssignments(ctx context.Context, clientID string) ([]assignment.Assignment, error) {
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	return s.assignments.ListActive(ctx, clientID)
}

// ListActivePreferences returns the client's active preferences ordered by
// level.
func (s *Service) ListActivePreferences(ctx context.Context, clientID string) ([]preference.Preference, error) {
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	return s.preferences.ListActive(ctx, clientID)
}

// ListActiveRestrictions returns the client's active restrictions ordered by
// severity.
func (s *Service) ListActiveRestrictions(ctx context.Context, clientID string) ([]restriction.Restriction, error) {
	if _, err := s.getClient(ctx, clientID); err != nil {
		return nil, err
	}
	return s.restrictions.ListActive(ctx, clientID)
}

func (s *Service) getClient(ctx context.Context, clientID string) (directory.Client, error) {
	client, err := s.directory.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return directory.Client{}, dErrors.New(dErrors.CodeNotFound, "client not found")
		}
		return directory.Client{}, dErrors.Wrap(err, dErrors.CodeInternal, "get client")
	}
	return client, nil
}

func (s *Service) requireMutableClient(ctx context.Context, clientID string) error {
	client, err := s.getClient(ctx, clientID)
	if err != nil {
		return err
	}
	if client.Archived {
		return dErrors.New(dErrors.CodeArchived, "client is archived")
	}
	return nil
}

func (s *Service) requireStaff(ctx context.Context, staffID string) error {
	if _, err := s.directory.GetStaff(ctx, staffID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "staff member not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "get staff")
	}
	return nil
}

func (s *Service) recordMutation(operation string, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.RecordMutation(operation, result)
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	event.ActorID = requestcontext.ActorID(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	s.publisher.Emit(ctx, event)
}
