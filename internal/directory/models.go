// Package directory is the collaborator surface the care-team core consumes:
// client and staff identity lookups. The core reads the archived flag and the
// current status from here; the status value itself is written only through
// the care-team orchestrator's transaction.
package directory

import (
	"time"

	dErrors "careteam/pkg/domain-errors"
)

// ClientStatus is the operational status of a client. Any status may
// transition to any other; the meaning of a transition is carried by the
// free-text reason on its log entry.
type ClientStatus string

const (
	StatusActive     ClientStatus = "Active"
	StatusHospital   ClientStatus = "Hospital"
	StatusPaused     ClientStatus = "Paused"
	StatusDischarged ClientStatus = "Discharged"
)

// ParseClientStatus validates a status value from the wire.
func ParseClientStatus(raw string) (ClientStatus, error) {
	switch ClientStatus(raw) {
	case StatusActive, StatusHospital, StatusPaused, StatusDischarged:
		return ClientStatus(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid client status %q", raw)
	}
}

// Client is a care recipient. Status defaults to Active for clients created
// before any transition was recorded. Archived clients are frozen: every
// core mutation against them is rejected.
type Client struct {
	ID        string
	FullName  string
	Status    ClientStatus
	Archived  bool
	CreatedAt time.Time
}

// Staff is a care worker referenced by assignments, preferences, and
// restrictions. Only identity and the active flag matter to the core.
type Staff struct {
	ID        string
	FullName  string
	Active    bool
	CreatedAt time.Time
}
