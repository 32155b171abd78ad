package restriction

import (
	"strings"
	"time"

	dErrors "careteam/pkg/domain-errors"
)

// Severity grades how strongly a restriction blocks rostering.
// warning (informational) < soft_block (overridable) < hard_block (absolute).
type Severity string

const (
	SeverityWarning   Severity = "warning"
	SeveritySoftBlock Severity = "soft_block"
	SeverityHardBlock Severity = "hard_block"
)

// ParseSeverity validates a severity value from the wire.
func ParseSeverity(raw string) (Severity, error) {
	switch Severity(raw) {
	case SeverityWarning, SeveritySoftBlock, SeverityHardBlock:
		return Severity(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeValidation, "invalid restriction severity %q", raw)
	}
}

// Rank orders severities for comparison; lower is stronger.
func (s Severity) Rank() int {
	switch s {
	case SeverityHardBlock:
		return 0
	case SeveritySoftBlock:
		return 1
	default:
		return 2
	}
}

// Restriction is a safety or compliance constraint against rostering a staff
// member for a client. The reason is mandatory: a restriction without one
// cannot be created or remain active.
type Restriction struct {
	ID        string
	ClientID  string
	StaffID   string
	Reason    string
	Severity  Severity
	IsActive  bool
	CreatedAt time.Time
}

// ValidateReason enforces the non-empty reason rule.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return dErrors.New(dErrors.CodeValidation, "restriction reason must not be empty")
	}
	return nil
}
