package directory

import "context"

// Store provides client and staff lookups. Mutations beyond archival exist
// only for seeding and the archival workflow; UpdateClientStatus is reserved
// for the care-team orchestrator's transaction and must not be called from
// any other path.
type Store interface {
	GetClient(ctx context.Context, clientID string) (Client, error)
	GetStaff(ctx context.Context, staffID string) (Staff, error)

	CreateClient(ctx context.Context, client Client) error
	CreateStaff(ctx context.Context, staff Staff) error

	ArchiveClient(ctx context.Context, clientID string) error
	RestoreClient(ctx context.Context, clientID string) error

	UpdateClientStatus(ctx context.Context, clientID string, status ClientStatus) error
}
