package assignment

import (
	"context"
	"time"
)

// Store persists assignments. ListActive returns entries with no end date or
// an end date after now, ordered by start date ascending.
type Store interface {
	Insert(ctx context.Context, a Assignment) error
	Get(ctx context.Context, id string) (Assignment, error)
	SetEndDate(ctx context.Context, id string, endDate time.Time) error
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context, clientID string, now time.Time) ([]Assignment, error)
}
