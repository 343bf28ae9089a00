package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type ContentHandler struct {
	Dashboard *usecase.Dashboard
	Logger    *zap.Logger
}

func NewContentHandler(d *usecase.Dashboard, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{Dashboard: d, Logger: logger}
}

type ImageResponse struct {
	Content   ContentResponse `json:"content"`
	Generated bool            `json:"generated"`
}

type InsertLinkRequest struct {
	// Position is a character offset into the body; omitted means the end.
	Position *int `json:"position,omitempty"`
}

type SendRequest struct {
	To string `json:"to"`
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newContentResponses(h.Dashboard.ListContents()))
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Dashboard.Content(chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newContentResponse(c))
}

// Update (PATCH /contents/{id}) merges headline, body and image_url.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch entity.ContentPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	if patch.IsEmpty() {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "nothing to update")
		return
	}

	c, err := h.Dashboard.UpdateContent(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newContentResponse(c))
}

func (h *ContentHandler) Select(w http.ResponseWriter, r *http.Request) {
	c, err := h.Dashboard.SelectContent(chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newContentResponse(c))
}

// GenerateImage (POST /contents/{id}/image). generated=false means the
// gateway produced nothing; the content is returned unchanged.
func (h *ContentHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	out, err := h.Dashboard.GenerateImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ImageResponse{
		Content:   newContentResponse(out.Content),
		Generated: out.Generated,
	})
}

func (h *ContentHandler) InsertLink(w http.ResponseWriter, r *http.Request) {
	var req InsertLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	pos := -1
	if req.Position != nil {
		pos = *req.Position
	}

	c, err := h.Dashboard.InsertLink(chi.URLParam(r, "id"), pos)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newContentResponse(c))
}

// Export (GET /contents/{id}/export) returns the copy-ready text.
func (h *ContentHandler) Export(w http.ResponseWriter, r *http.Request) {
	text, err := h.Dashboard.ExportContent(chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (h *ContentHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	if err := h.Dashboard.SendContent(chi.URLParam(r, "id"), req.To); err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
