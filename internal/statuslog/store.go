package statuslog

import "context"

// Store is append-only. History returns entries newest-first by createdAt,
// tie-broken by insertion order; the UI and reporting consumers depend on
// this ordering.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	History(ctx context.Context, clientID string) ([]Entry, error)
}
