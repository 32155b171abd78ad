package preference

import "context"

// Store persists preferences. ListActive orders by level rank (primary
// first), then creation time, so callers get a deterministic ranking even
// with ties.
type Store interface {
	Insert(ctx context.Context, p Preference) error
	Get(ctx context.Context, id string) (Preference, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, clientID string) ([]Preference, error)
	// FindActivePair returns the active preferences for one (client, staff)
	// pair. Used by the mutual-exclusion check and the evaluator.
	FindActivePair(ctx context.Context, clientID, staffID string) ([]Preference, error)
}
