// Package statuslog is the append-only history of client status
// transitions. Entries are written exactly once per accepted transition and
// never mutated or deleted; the stores expose no update path at all.
package statuslog

import (
	"time"

	"careteam/internal/directory"
)

// Entry records one status transition. PreviousStatus is empty for clients
// whose status was never set before the transition.
type Entry struct {
	ID             string
	ClientID       string
	PreviousStatus directory.ClientStatus
	NewStatus      directory.ClientStatus
	Reason         string
	ChangedBy      string
	CreatedAt      time.Time
}
