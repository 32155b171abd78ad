package eligibility

import (
	"careteam/internal/preference"
	"careteam/internal/restriction"
)

// Outcome is the eligibility verdict for a candidate (client, staff) pair.
type Outcome string

const (
	OutcomeBlocked            Outcome = "BLOCKED"
	OutcomeRequiresOverride   Outcome = "REQUIRES_OVERRIDE"
	OutcomeAllowedWithWarning Outcome = "ALLOWED_WITH_WARNING"
	OutcomePreferred          Outcome = "PREFERRED"
	OutcomeNeutral            Outcome = "NEUTRAL"
)

// Verdict is the evaluator's result. Severity and Reason are set for
// restriction-driven outcomes; Level is set when the outcome is PREFERRED.
// For REQUIRES_OVERRIDE the caller must persist an explicit override
// decision wherever the assignment is finally recorded.
type Verdict struct {
	Outcome  Outcome              `json:"verdict"`
	Severity restriction.Severity `json:"severity,omitempty"`
	Reason   string               `json:"reason,omitempty"`
	Level    preference.Level     `json:"level,omitempty"`
}

// SignalKind tags a care-team signal.
type SignalKind string

const (
	SignalRestriction SignalKind = "restriction"
	SignalPreference  SignalKind = "preference"
	SignalNone        SignalKind = "none"
)

// Signal is the tagged view of a pair's strongest care-team state: a graded
// restriction, a ranked preference, or nothing. The evaluator consumes this
// instead of two independently-nullable objects.
type Signal struct {
	Kind     SignalKind
	Severity restriction.Severity
	Reason   string
	Level    preference.Level
}
