package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/usecase"
)

type TemplateHandler struct {
	Dashboard *usecase.Dashboard
	Logger    *zap.Logger
}

func NewTemplateHandler(d *usecase.Dashboard, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{Dashboard: d, Logger: logger}
}

// Search (GET /templates?q=)
func (h *TemplateHandler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dashboard.SearchTemplates(r.URL.Query().Get("q")))
}

// Save (POST /templates) snapshots a content item, with unsaved edits.
func (h *TemplateHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in usecase.SaveTemplateInput
	if err := decodeJSON(r, &in); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	if in.ContentID == "" {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "content_id is required")
		return
	}

	tpl, err := h.Dashboard.SaveTemplate(in)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

// Use (POST /templates/{id}/use) starts new content from the template.
func (h *TemplateHandler) Use(w http.ResponseWriter, r *http.Request) {
	c, err := h.Dashboard.UseTemplate(chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, newContentResponse(c))
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Dashboard.DeleteTemplate(chi.URLParam(r, "id")); err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
