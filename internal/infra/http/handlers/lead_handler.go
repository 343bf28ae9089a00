package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type LeadHandler struct {
	Dashboard *usecase.Dashboard
	Logger    *zap.Logger
}

func NewLeadHandler(d *usecase.Dashboard, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{Dashboard: d, Logger: logger}
}

type ScanResponse struct {
	Leads []entity.Lead `json:"leads"`
	Count int           `json:"count"`
}

type QualifyResponse struct {
	Lead    entity.Lead      `json:"lead"`
	Content *ContentResponse `json:"content"`
}

// Scan (POST /scans) replaces the lead list. A failed gateway call is an
// empty list, not an error.
func (h *LeadHandler) Scan(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Dashboard.StartScan(r.Context())
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ScanResponse{Leads: leads, Count: len(leads)})
}

// List (GET /leads?status=)
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	status := entity.LeadStatus(r.URL.Query().Get("status"))
	switch status {
	case "", entity.LeadStatusNew, entity.LeadStatusQualified, entity.LeadStatusDiscarded:
	default:
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "status must be one of new, qualified, discarded")
		return
	}
	writeJSON(w, http.StatusOK, h.Dashboard.ListLeads(status))
}

// Qualify (POST /leads/{id}/qualify)
func (h *LeadHandler) Qualify(w http.ResponseWriter, r *http.Request) {
	out, err := h.Dashboard.QualifyLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	resp := QualifyResponse{Lead: out.Lead}
	if out.Content != nil {
		c := newContentResponse(*out.Content)
		resp.Content = &c
	}
	writeJSON(w, http.StatusOK, resp)
}

// Discard (DELETE /leads/{id})
func (h *LeadHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.Dashboard.DiscardLead(chi.URLParam(r, "id")); err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
