package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/service"
)

// IssueHandler serves issue reporting, adjudication and the insurance-pool
// admin view.
type IssueHandler struct {
	issues service.IssueService
}

func NewIssueHandler(issues service.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

type raiseIssueRequest struct {
	BookingID   string   `json:"bookingid" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Photos      []string `json:"photos"`
}

type resolveIssueRequest struct {
	Status         string `json:"status" validate:"required"`
	ResolutionNote string `json:"resolutionnote"`
	DeductAmount   int64  `json:"deductamount"`
}

func (h *IssueHandler) Raise(w http.ResponseWriter, r *http.Request) {
	var req raiseIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	issue, err := h.issues.RaiseIssue(r.Context(), req.BookingID,
		ClaimsFrom(r.Context()).UserID, req.Description, req.Photos)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"issue": issue})
}

func (h *IssueHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveIssueRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	issue, pool, err := h.issues.ResolveIssue(r.Context(), mux.Vars(r)["id"],
		ClaimsFrom(r.Context()).UserID, domain.IssueStatus(req.Status),
		req.ResolutionNote, req.DeductAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := map[string]any{"issue": issue}
	if pool != nil {
		payload["insurancePool"] = pool
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *IssueHandler) List(w http.ResponseWriter, r *http.Request) {
	issues, err := h.issues.ListIssues(r.Context(), ClaimsFrom(r.Context()).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"issues": issues})
}

func (h *IssueHandler) InsurancePool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.issues.GetInsurancePool(r.Context(), ClaimsFrom(r.Context()).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"insurancePool": pool})
}
