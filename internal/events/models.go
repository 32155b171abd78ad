// Package events publishes care-team change notifications. Events are
// emitted after a mutation commits and delivered best-effort: a sink failure
// is logged, never propagated back into the committed operation.
package events

import "time"

// Type names a care-team change.
type Type string

const (
	TypePreferenceSet      Type = "preference_set"
	TypePreferenceRemoved  Type = "preference_removed"
	TypeRestrictionSet     Type = "restriction_set"
	TypeRestrictionRemoved Type = "restriction_removed"
	TypeAssignmentCreated  Type = "assignment_created"
	TypeAssignmentEnded    Type = "assignment_ended"
	TypeAssignmentRemoved  Type = "assignment_removed"
	TypeStatusChanged      Type = "status_changed"
)

// Event is emitted from the orchestrator to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ClientID  string    `json:"client_id"`
	StaffID   string    `json:"staff_id,omitempty"`
	EntityID  string    `json:"entity_id,omitempty"`
	ActorID   string    `json:"actor_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
