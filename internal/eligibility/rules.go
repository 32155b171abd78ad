package eligibility

import (
	"careteam/internal/preference"
	"careteam/internal/restriction"
)

// Reduce collapses the active entries for one pair into a single tagged
// signal. Restrictions dominate preferences so that any future relaxation of
// the mutual-exclusion rule degrades safely; within restrictions the
// strongest severity wins, within preferences the strongest level.
// This is pure domain logic - no I/O, no side effects.
func Reduce(restrictions []restriction.Restriction, preferences []preference.Preference) Signal {
	if len(restrictions) > 0 {
		strongest := restrictions[0]
		for _, r := range restrictions[1:] {
			if r.Severity.Rank() < strongest.Severity.Rank() {
				strongest = r
			}
		}
		return Signal{
			Kind:     SignalRestriction,
			Severity: strongest.Severity,
			Reason:   strongest.Reason,
		}
	}

	if len(preferences) > 0 {
		strongest := preferences[0]
		for _, p := range preferences[1:] {
			if p.Level.Rank() < strongest.Level.Rank() {
				strongest = p
			}
		}
		return Signal{
			Kind:  SignalPreference,
			Level: strongest.Level,
		}
	}

	return Signal{Kind: SignalNone}
}

// Decide applies the verdict rule chain to a signal.
// Rule priority (fail-fast):
//  1. hard_block restriction - absolute, dominates every other signal
//  2. soft_block restriction - proceeding requires an explicit override
//  3. warning restriction - informational, never blocks
//  4. preference - positive ranking signal with its level
//  5. nothing - neutral
func Decide(signal Signal) Verdict {
	switch signal.Kind {
	case SignalRestriction:
		switch signal.Severity {
		case restriction.SeverityHardBlock:
			return Verdict{Outcome: OutcomeBlocked, Severity: signal.Severity, Reason: signal.Reason}
		case restriction.SeveritySoftBlock:
			return Verdict{Outcome: OutcomeRequiresOverride, Severity: signal.Severity, Reason: signal.Reason}
		default:
			return Verdict{Outcome: OutcomeAllowedWithWarning, Severity: signal.Severity, Reason: signal.Reason}
		}
	case SignalPreference:
		return Verdict{Outcome: OutcomePreferred, Level: signal.Level}
	default:
		return Verdict{Outcome: OutcomeNeutral}
	}
}

// Evaluate composes Reduce and Decide over the active entries for one pair.
func Evaluate(restrictions []restriction.Restriction, preferences []preference.Preference) Verdict {
	return Decide(Reduce(restrictions, preferences))
}
