package preference

import (
	"time"

	dErrors "careteam/pkg/domain-errors"
)

// Level ranks how desirable a staff member is for a client.
// primary > secondary > backup.
type Level string

const (
	LevelPrimary   Level = "primary"
	LevelSecondary Level = "secondary"
	LevelBackup    Level = "backup"
)

// ParseLevel validates a preference level from the wire.
func ParseLevel(raw string) (Level, error) {
	switch Level(raw) {
	case LevelPrimary, LevelSecondary, LevelBackup:
		return Level(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid preference level %q", raw)
	}
}

// Rank orders levels for comparison; lower is stronger. Callers ranking
// candidates break ties themselves, since multiple primaries are allowed.
func (l Level) Rank() int {
	switch l {
	case LevelPrimary:
		return 0
	case LevelSecondary:
		return 1
	default:
		return 2
	}
}

// Preference is a ranked recommendation to roster a staff member for a
// client. Deactivated entries are retained for history.
type Preference struct {
	ID        string
	ClientID  string
	StaffID   string
	Level     Level
	Notes     string
	IsActive  bool
	CreatedAt time.Time
}
