package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/store"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

// DashboardHandler serves the whole-app endpoints: state, view, product
// and summary.
type DashboardHandler struct {
	Dashboard *usecase.Dashboard
	Logger    *zap.Logger
}

func NewDashboardHandler(d *usecase.Dashboard, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{Dashboard: d, Logger: logger}
}

type StateResponse struct {
	store.State
	Loading       bool             `json:"loading"`
	ActiveContent *ContentResponse `json:"active_content,omitempty"`
}

type NavigateRequest struct {
	View string `json:"view"`
}

func newStateResponse(st store.State) StateResponse {
	resp := StateResponse{State: st, Loading: st.Loading()}
	if c, ok := st.ActiveContent(); ok {
		cr := newContentResponse(c)
		resp.ActiveContent = &cr
	}
	return resp
}

// State (GET /state)
func (h *DashboardHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(h.Dashboard.State()))
}

// Navigate (PUT /view)
func (h *DashboardHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	st, err := h.Dashboard.Navigate(req.View)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(st))
}

// GetProduct (GET /product)
func (h *DashboardHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dashboard.Product())
}

// PutProduct (PUT /product) replaces the product wholesale.
func (h *DashboardHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	var p entity.AffiliateProduct
	if err := decodeJSON(r, &p); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	saved, err := h.Dashboard.ConfigureProduct(p)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Summary (GET /dashboard)
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dashboard.Summary())
}
