// Package handler is the HTTP surface of the care-team core. Handlers
// decode, delegate to the orchestrator, and encode; no business rule lives
// here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"careteam/internal/assignment"
	"careteam/internal/careteam"
	"careteam/internal/directory"
	"careteam/internal/eligibility"
	"careteam/internal/platform/metrics"
	"careteam/internal/platform/middleware"
	"careteam/internal/preference"
	"careteam/internal/restriction"
	"careteam/internal/statuslog"
	dErrors "careteam/pkg/domain-errors"
)

const requestTimeout = 30 * time.Second

// Service defines the orchestrator operations the HTTP layer needs.
type Service interface {
	SetPreference(ctx context.Context, clientID, staffID string, level preference.Level, notes string) (preference.Preference, error)
	RemovePreference(ctx context.Context, id string) error
	SetRestriction(ctx context.Context, clientID, staffID, reason string, severity restriction.Severity) (restriction.Restriction, error)
	RemoveRestriction(ctx context.Context, id string) error
	AddAssignment(ctx context.Context, clientID, staffID string, assignmentType assignment.Type, startDate time.Time) (assignment.Assignment, error)
	EndAssignment(ctx context.Context, id string, endDate time.Time) (assignment.Assignment, error)
	RemoveAssignment(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, clientID string, newStatus directory.ClientStatus, reason string) (careteam.StatusChange, error)
	History(ctx context.Context, clientID string) ([]statuslog.Entry, error)
	Evaluate(ctx context.Context, clientID, staffID string) (eligibility.Verdict, error)
	ListActiveAssignments(ctx context.Context, clientID string) ([]assignment.Assignment, error)
	ListActivePreferences(ctx context.Context, clientID string) ([]preference.Preference, error)
	ListActiveRestrictions(ctx context.Context, clientID string) ([]restriction.Restriction, error)
}

// Handler handles care-team endpoints.
type Handler struct {
	logger    *slog.Logger
	service   Service
	metrics   *metrics.Metrics
	validator middleware.TokenValidator
}

func New(service Service, logger *slog.Logger, m *metrics.Metrics, validator middleware.TokenValidator) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		metrics:   m,
		validator: validator,
	}
}

// Register registers the care-team routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))
	if h.validator != nil {
		router.Use(middleware.RequireAuth(h.validator, h.logger))
	}

	router.Post("/clients/{clientID}/staff-preferences", h.handleSetPreference)
	router.Get("/clients/{clientID}/staff-preferences", h.handleListPreferences)
	router.Delete("/staff-preferences/{id}", h.handleRemovePreference)

	router.Post("/clients/{clientID}/staff-restrictions", h.handleSetRestriction)
	router.Get("/clients/{clientID}/staff-restrictions", h.handleListRestrictions)
	router.Delete("/staff-restrictions/{id}", h.handleRemoveRestriction)

	router.Post("/clients/{clientID}/assignments", h.handleAddAssignment)
	router.Get("/clients/{clientID}/assignments", h.handleListAssignments)
	router.Patch("/assignments/{id}/end", h.handleEndAssignment)
	router.Delete("/assignments/{id}", h.handleRemoveAssignment)

	router.Post("/clients/{clientID}/status", h.handleChangeStatus)
	router.Get("/clients/{clientID}/status-logs", h.handleStatusLogs)

	router.Get("/clients/{clientID}/eligibility/{staffID}", h.handleEvaluate)

	r.Mount("/", router)
}

type setPreferenceRequest struct {
	StaffID         string `json:"staffId"`
	PreferenceLevel string `json:"preferenceLevel"`
	Notes           string `json:"notes"`
}

func (h *Handler) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := chi.URLParam(r, "clientID")

	var req setPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	created, err := h.service.SetPreference(ctx, clientID, req.StaffID, preference.Level(req.PreferenceLevel), req.Notes)
	if err != nil {
		h.logFailure(ctx, "set preference", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPreferenceResponse(created))
}

func (h *Handler) handleListPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.ListActivePreferences(ctx, chi.URLParam(r, "clientID"))
	if err != nil {
		h.logFailure(ctx, "list preferences", err)
		writeError(w, err)
		return
	}
	out := make([]preferenceResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPreferenceResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleRemovePreference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.RemovePreference(ctx, chi.URLParam(r, "id")); err != nil {
		h.logFailure(ctx, "remove preference", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setRestrictionRequest struct {
	StaffID  string `json:"staffId"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

func (h *Handler) handleSetRestriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := chi.URLParam(r, "clientID")

	var req setRestrictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	created, err := h.service.SetRestriction(ctx, clientID, req.StaffID, req.Reason, restriction.Severity(req.Severity))
	if err != nil {
		h.logFailure(ctx, "set restriction", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRestrictionResponse(created))
}

func (h *Handler) handleListRestrictions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.ListActiveRestrictions(ctx, chi.URLParam(r, "clientID"))
	if err != nil {
		h.logFailure(ctx, "list restrictions", err)
		writeError(w, err)
		return
	}
	out := make([]restrictionResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toRestrictionResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleRemoveRestriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.RemoveRestriction(ctx, chi.URLParam(r, "id")); err != nil {
		h.logFailure(ctx, "remove restriction", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addAssignmentRequest struct {
	StaffID        string `json:"staffId"`
	AssignmentType string `json:"assignmentType"`
	StartDate      string `json:"startDate"`
}

func (h *Handler) handleAddAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := chi.URLParam(r, "clientID")

	var req addAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeValidation, "startDate must be RFC 3339"))
			return
		}
		startDate = parsed
	}

	created, err := h.service.AddAssignment(ctx, clientID, req.StaffID, assignment.Type(req.AssignmentType), startDate)
	if err != nil {
		h.logFailure(ctx, "add assignment", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentResponse(created))
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.ListActiveAssignments(ctx, chi.URLParam(r, "clientID"))
	if err != nil {
		h.logFailure(ctx, "list assignments", err)
		writeError(w, err)
		return
	}
	out := make([]assignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssignmentResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

type endAssignmentRequest struct {
	EndDate string `json:"endDate"`
}

func (h *Handler) handleEndAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req endAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "endDate must be RFC 3339"))
		return
	}

	ended, err := h.service.EndAssignment(ctx, chi.URLParam(r, "id"), endDate)
	if err != nil {
		h.logFailure(ctx, "end assignment", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssignmentResponse(ended))
}

func (h *Handler) handleRemoveAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.RemoveAssignment(ctx, chi.URLParam(r, "id")); err != nil {
		h.logFailure(ctx, "remove assignment", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h *Handler) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := chi.URLParam(r, "clientID")

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	change, err := h.service.ChangeStatus(ctx, clientID, directory.ClientStatus(req.Status), req.Reason)
	if err != nil {
		h.logFailure(ctx, "change status", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusChangeResponse(change))
}

func (h *Handler) handleStatusLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := h.service.History(ctx, chi.URLParam(r, "clientID"))
	if err != nil {
		h.logFailure(ctx, "status history", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatusLogResponses(entries))
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	verdict, err := h.service.Evaluate(ctx, chi.URLParam(r, "clientID"), chi.URLParam(r, "staffID"))
	if err != nil {
		h.logFailure(ctx, "evaluate", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (h *Handler) logFailure(ctx context.Context, operation string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "operation failed",
			"operation", operation,
			"error", err.Error(),
		)
		return
	}
	h.logger.WarnContext(ctx, "operation rejected",
		"operation", operation,
		"code", string(code),
		"error", err.Error(),
	)
}
