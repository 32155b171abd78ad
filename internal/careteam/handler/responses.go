package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"careteam/internal/assignment"
	"careteam/internal/careteam"
	"careteam/internal/preference"
	"careteam/internal/restriction"
	"careteam/internal/statuslog"
	dErrors "careteam/pkg/domain-errors"
)

type preferenceResponse struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"clientId"`
	StaffID         string    `json:"staffId"`
	PreferenceLevel string    `json:"preferenceLevel"`
	Notes           string    `json:"notes,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toPreferenceResponse(p preference.Preference) preferenceResponse {
	return preferenceResponse{
		ID:              p.ID,
		ClientID:        p.ClientID,
		StaffID:         p.StaffID,
		PreferenceLevel: string(p.Level),
		Notes:           p.Notes,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

type restrictionResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	StaffID   string    `json:"staffId"`
	Reason    string    `json:"reason"`
	Severity  string    `json:"severity"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRestrictionResponse(r restriction.Restriction) restrictionResponse {
	return restrictionResponse{
		ID:        r.ID,
		ClientID:  r.ClientID,
		StaffID:   r.StaffID,
		Reason:    r.Reason,
		Severity:  string(r.Severity),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

type assignmentResponse struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"clientId"`
	StaffID        string     `json:"staffId"`
	AssignmentType string     `json:"assignmentType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toAssignmentResponse(a assignment.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:             a.ID,
		ClientID:       a.ClientID,
		StaffID:        a.StaffID,
		AssignmentType: string(a.Type),
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		CreatedAt:      a.CreatedAt,
	}
}

type statusChangeResponse struct {
	ClientID       string `json:"clientId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

func toStatusChangeResponse(c careteam.StatusChange) statusChangeResponse {
	return statusChangeResponse{
		ClientID:       c.ClientID,
		PreviousStatus: string(c.Previous),
		NewStatus:      string(c.New),
	}
}

type statusLogResponse struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clientId"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	NewStatus      string    `json:"newStatus"`
	Reason         string    `json:"reason,omitempty"`
	ChangedBy      string    `json:"changedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toStatusLogResponses(entries []statuslog.Entry) []statusLogResponse {
	out := make([]statusLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, statusLogResponse{
			ID:             e.ID,
			ClientID:       e.ClientID,
			PreviousStatus: string(e.PreviousStatus),
			NewStatus:      string(e.NewStatus),
			Reason:         e.Reason,
			ChangedBy:      e.ChangedBy,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   string(code),
		"message": dErrors.MessageOf(err),
	})
}
