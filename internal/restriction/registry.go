package restriction

import (
	"context"
	"errors"

	"github.com/google/uuid"

	dErrors "careteam/pkg/domain-errors"
	"careteam/pkg/platform/sentinel"
	"careteam/pkg/requestcontext"
)

// Registry owns restriction entries and their severity grading. The
// preferred-vs-restricted exclusion is enforced by the orchestrator.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Add validates reason and severity, then inserts an active restriction.
func (r *Registry) Add(ctx context.Context, clientID, staffID, reason string, severity Severity) (Restriction, error) {
	if err := ValidateReason(reason); err != nil {
		return Restriction{}, err
	}
	if _, err := ParseSeverity(string(severity)); err != nil {
		return Restriction{}, err
	}

	entry := Restriction{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		StaffID:   staffID,
		Reason:    reason,
		Severity:  severity,
		IsActive:  true,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := r.store.Insert(ctx, entry); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Restriction{}, dErrors.New(dErrors.CodeConflict, "restriction already active for this pair")
		}
		return Restriction{}, dErrors.Wrap(err, dErrors.CodeInternal, "insert restriction")
	}
	return entry, nil
}

// Get returns one entry by id.
func (r *Registry) Get(ctx context.Context, id string) (Restriction, error) {
	entry, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Restriction{}, dErrors.New(dErrors.CodeNotFound, "restriction not found")
		}
		return Restriction{}, dErrors.Wrap(err, dErrors.CodeInternal, "get restriction")
	}
	return entry, nil
}

// Deactivate marks the entry inactive, retaining it for history.
func (r *Registry) Deactivate(ctx context.Context, id string) error {
	if err := r.store.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "restriction not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "deactivate restriction")
	}
	return nil
}

// Remove hard-deletes the entry. Kept for data correction; the HTTP surface
// uses Deactivate.
func (r *Registry) Remove(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "restriction not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete restriction")
	}
	return nil
}

// ListActive returns the client's active restrictions, strongest severity first.
func (r *Registry) ListActive(ctx context.Context, clientID string) ([]Restriction, error) {
	list, err := r.store.ListActive(ctx, clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list active restrictions")
	}
	return list, nil
}

// FindActivePair returns active restrictions for one (client, staff) pair.
func (r *Registry) FindActivePair(ctx context.Context, clientID, staffID string) ([]Restriction, error) {
	list, err := r.store.FindActivePair(ctx, clientID, staffID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find active restrictions")
	}
	return list, nil
}
