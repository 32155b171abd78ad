package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	dErrors "careteam/pkg/domain-errors"
	"careteam/pkg/platform/sentinel"
	"careteam/pkg/requestcontext"
)

// Registry owns the assignment lifecycle. Archived-client gating happens in
// the orchestrator against the directory; the registry itself inserts
// unconditionally once the type is valid.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Add creates an assignment. A zero startDate defaults to the request time.
func (r *Registry) Add(ctx context.Context, clientID, staffID string, assignmentType Type, startDate time.Time) (Assignment, error) {
	if _, err := ParseType(string(assignmentType)); err != nil {
		return Assignment{}, err
	}

	now := requestcontext.Now(ctx)
	if startDate.IsZero() {
		startDate = now
	}

	a := Assignment{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		StaffID:   staffID,
		Type:      assignmentType,
		StartDate: startDate,
		CreatedAt: now,
	}
	if err := r.store.Insert(ctx, a); err != nil {
		return Assignment{}, dErrors.Wrap(err, dErrors.CodeInternal, "insert assignment")
	}
	return a, nil
}

// Get returns the assignment by id.
func (r *Registry) Get(ctx context.Context, id string) (Assignment, error) {
	a, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Assignment{}, dErrors.New(dErrors.CodeNotFound, "assignment not found")
		}
		return Assignment{}, dErrors.Wrap(err, dErrors.CodeInternal, "get assignment")
	}
	return a, nil
}

// End sets the end date, closing the assignment once the date passes.
func (r *Registry) End(ctx context.Context, id string, endDate time.Time) (Assignment, error) {
	a, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Assignment{}, dErrors.New(dErrors.CodeNotFound, "assignment not found")
		}
		return Assignment{}, dErrors.Wrap(err, dErrors.CodeInternal, "get assignment")
	}
	if endDate.Before(a.StartDate) {
		return Assignment{}, dErrors.New(dErrors.CodeValidation, "end date before start date")
	}

	if err := r.store.SetEndDate(ctx, id, endDate); err != nil {
		return Assignment{}, dErrors.Wrap(err, dErrors.CodeInternal, "set assignment end date")
	}
	a.EndDate = &endDate
	return a, nil
}

// Remove hard-deletes the assignment.
func (r *Registry) Remove(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "assignment not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete assignment")
	}
	return nil
}

// ListActive returns the client's active assignments ordered by start date
// ascending. The count of this list is the activeAssignmentCount the UI
// layer displays.
func (r *Registry) ListActive(ctx context.Context, clientID string) ([]Assignment, error) {
	list, err := r.store.ListActive(ctx, clientID, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list active assignments")
	}
	return list, nil
}
