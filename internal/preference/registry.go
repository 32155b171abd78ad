package preference

import (
	"context"
	"errors"

	"github.com/google/uuid"

	dErrors "careteam/pkg/domain-errors"
	"careteam/pkg/platform/sentinel"
	"careteam/pkg/requestcontext"
)

// Registry owns preference entries. Uniqueness of the primary level is
// deliberately not enforced; several staff can hold primary for one client
// and callers ranking candidates handle the tie.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Add validates the level and inserts an active preference. The
// preferred-vs-restricted exclusion is the orchestrator's check, not ours.
func (r *Registry) Add(ctx context.Context, clientID, staffID string, level Level, notes string) (Preference, error) {
	if _, err := ParseLevel(string(level)); err != nil {
		return Preference{}, err
	}

	p := Preference{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		StaffID:   staffID,
		Level:     level,
		Notes:     notes,
		IsActive:  true,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := r.store.Insert(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Preference{}, dErrors.New(dErrors.CodeConflict, "preference already active for this pair")
		}
		return Preference{}, dErrors.Wrap(err, dErrors.CodeInternal, "insert preference")
	}
	return p, nil
}

// Get returns one entry by id.
func (r *Registry) Get(ctx context.Context, id string) (Preference, error) {
	p, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Preference{}, dErrors.New(dErrors.CodeNotFound, "preference not found")
		}
		return Preference{}, dErrors.Wrap(err, dErrors.CodeInternal, "get preference")
	}
	return p, nil
}

// Deactivate marks the entry inactive, retaining it for history.
func (r *Registry) Deactivate(ctx context.Context, id string) error {
	if err := r.store.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "preference not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "deactivate preference")
	}
	return nil
}

// Remove hard-deletes the entry. Kept for data correction; the HTTP surface
// uses Deactivate.
func (r *Registry) Remove(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "preference not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete preference")
	}
	return nil
}

// ListActive returns the client's active preferences, strongest level first.
func (r *Registry) ListActive(ctx context.Context, clientID string) ([]Preference, error) {
	list, err := r.store.ListActive(ctx, clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list active preferences")
	}
	return list, nil
}

// FindActivePair returns active preferences for one (client, staff) pair.
func (r *Registry) FindActivePair(ctx context.Context, clientID, staffID string) ([]Preference, error) {
	list, err := r.store.FindActivePair(ctx, clientID, staffID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find active preferences")
	}
	return list, nil
}
