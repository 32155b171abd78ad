package restriction

import "context"

// Store persists restrictions. ListActive orders by severity rank
// (hard_block first), then creation time.
type Store interface {
	Insert(ctx context.Context, r Restriction) error
	Get(ctx context.Context, id string) (Restriction, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, clientID string) ([]Restriction, error)
	// FindActivePair returns the active restrictions for one (client, staff)
	// pair. Used by the mutual-exclusion check and the evaluator.
	FindActivePair(ctx context.Context, clientID, staffID string) ([]Restriction, error)
}
