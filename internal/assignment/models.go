package assignment

import (
	"time"

	dErrors "careteam/pkg/domain-errors"
)

// Type classifies an assignment's role on a client's care team.
type Type string

const (
	TypePrimarySupport   Type = "primary_support"
	TypeSecondarySupport Type = "secondary_support"
	TypeCareManager      Type = "care_manager"
	TypeClinicalNurse    Type = "clinical_nurse"
)

// ParseType validates an assignment type from the wire.
func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypePrimarySupport, TypeSecondarySupport, TypeCareManager, TypeClinicalNurse:
		return Type(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid assignment type %q", raw)
	}
}

// Assignment is a staff↔client roster entry. Concurrent active assignments
// of the same type for one client are permitted; the registry never dedupes.
type Assignment struct {
	ID        string
	ClientID  string
	StaffID   string
	Type      Type
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

// IsActive reports whether the assignment has no end date or one in the
// future relative to now.
func (a Assignment) IsActive(now time.Time) bool {
	return a.EndDate == nil || a.EndDate.After(now)
}
